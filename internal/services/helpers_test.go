package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/storage"
	"github.com/foxxcyber/fridgelist/internal/validation"
	"github.com/foxxcyber/fridgelist/internal/views"
)

var errDiskFull = errors.New("quota exceeded")

// faultyRecords wraps real records and fails selected writes
type faultyRecords struct {
	*storage.Records
	saveArchiveErrs []error
	clearErr        error
	saveListErr     error
	saveRecipesErr  error
}

func (f *faultyRecords) SaveArchive(ctx context.Context, entries []models.ArchiveEntry) error {
	if len(f.saveArchiveErrs) > 0 {
		err := f.saveArchiveErrs[0]
		f.saveArchiveErrs = f.saveArchiveErrs[1:]
		if err != nil {
			return err
		}
	}
	return f.Records.SaveArchive(ctx, entries)
}

func (f *faultyRecords) ClearShoppingList(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.Records.ClearShoppingList(ctx)
}

func (f *faultyRecords) SaveShoppingList(ctx context.Context, list *models.ShoppingList) error {
	if f.saveListErr != nil {
		return f.saveListErr
	}
	return f.Records.SaveShoppingList(ctx, list)
}

func (f *faultyRecords) SaveRecipes(ctx context.Context, recipes []models.Recipe) error {
	if f.saveRecipesErr != nil {
		return f.saveRecipesErr
	}
	return f.Records.SaveRecipes(ctx, recipes)
}

func newRecords() *storage.Records {
	return storage.New(storage.NewMemoryBackend()).For("device-1")
}

func newValidation() (*validation.Validator, *validation.Sanitizer) {
	return validation.NewValidator(0), validation.NewSanitizer(0)
}

func newFormatter() *views.Formatter {
	return views.NewFormatter("de-DE")
}

func item(name string, amount float64, unit string) models.ShoppingItem {
	return models.ShoppingItem{Name: name, Amount: models.NumericAmount(amount), Unit: unit}
}

func textItem(name, amount string) models.ShoppingItem {
	return models.ShoppingItem{Name: name, Amount: models.TextAmount(amount)}
}

func saveList(t *testing.T, records Records, items ...models.ShoppingItem) *models.ShoppingList {
	t.Helper()
	list := &models.ShoppingList{Items: items, RecipeIDs: []string{"r1"}}
	require.NoError(t, records.SaveShoppingList(context.Background(), list))
	return list
}

func amountOf(t *testing.T, i models.ShoppingItem) float64 {
	t.Helper()
	v, ok := i.Amount.Float()
	require.True(t, ok, "amount of %s is not numeric", i.Name)
	return v
}
