package services

import (
	"context"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/storage"
)

// Records is the owner-scoped persistence the services work against
type Records interface {
	LoadShoppingList(ctx context.Context) (*models.ShoppingList, error)
	SaveShoppingList(ctx context.Context, list *models.ShoppingList) error
	ClearShoppingList(ctx context.Context) error
	LoadArchive(ctx context.Context) ([]models.ArchiveEntry, error)
	SaveArchive(ctx context.Context, entries []models.ArchiveEntry) error
	LoadRecipes(ctx context.Context) ([]models.Recipe, error)
	SaveRecipes(ctx context.Context, recipes []models.Recipe) error
}

var _ Records = (*storage.Records)(nil)
