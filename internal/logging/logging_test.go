package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttachFileLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	file, err := OpenLogFile(path)
	require.NoError(t, err)
	defer file.Close()

	logger := AttachFileLogger(zap.NewNop(), file, false)
	logger.Info("Archived shopping trip", zap.String("entry_id", "e1"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Archived shopping trip"`)
	assert.Contains(t, string(data), `"entry_id":"e1"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestOpenLogFileEmptyPath(t *testing.T) {
	file, err := OpenLogFile("")
	require.NoError(t, err)
	assert.Nil(t, file)

	logger := zap.NewNop()
	assert.Same(t, logger, AttachFileLogger(logger, nil, true))
}
