package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/fridgelist/internal/models"
)

func TestRecordsAbsentValues(t *testing.T) {
	ctx := context.Background()
	records := New(NewMemoryBackend()).For("device-1")

	list, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	assert.Nil(t, list)

	archive, err := records.LoadArchive(ctx)
	require.NoError(t, err)
	assert.NotNil(t, archive)
	assert.Empty(t, archive)

	recipes, err := records.LoadRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	assert.NoError(t, records.ClearShoppingList(ctx), "clearing a missing list is fine")
}

func TestRecordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend())
	records := store.For("device-1")

	list := &models.ShoppingList{Items: []models.ShoppingItem{
		{Name: "Milch", Amount: models.NumericAmount(1), Unit: "l"},
		{Name: "Salz", Amount: models.TextAmount("etwas")},
	}}
	require.NoError(t, records.SaveShoppingList(ctx, list))

	loaded, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.True(t, loaded.Items[1].Amount.Equal(models.TextAmount("etwas")))

	loaded.Items[0].Name = "Sahne"
	again, err := records.LoadShoppingList(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Milch", again.Items[0].Name, "loads never share state")

	require.NoError(t, records.ClearShoppingList(ctx))
	loaded, err = records.LoadShoppingList(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRecordsAreScopedByOwner(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend())

	require.NoError(t, store.For("a").SaveRecipes(ctx, []models.Recipe{{ID: "r1", Name: "Suppe"}}))

	recipes, err := store.For("b").LoadRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	recipes, err = store.For("a").LoadRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
	assert.Equal(t, "a", store.For("a").Owner())
}

func TestRecordsDecodeError(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.PutRecord(ctx, "device-1", KeyArchive, []byte("{not json")))

	_, err := New(backend).For("device-1").LoadArchive(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode archive")
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	value := []byte(`[]`)
	require.NoError(t, backend.PutRecord(ctx, "o", "k", value))
	value[0] = 'x'

	got, err := backend.GetRecord(ctx, "o", "k")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = backend.GetRecord(ctx, "o", "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
