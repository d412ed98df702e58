// Package storage persists the three per-owner records (shopping list,
// recipes, archive) as JSON values on top of a byte backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// ErrRecordNotFound is returned by backends when no value is stored under a key
var ErrRecordNotFound = errors.New("record not found")

// Record keys
const (
	KeyShoppingList = "shopping_list"
	KeyRecipes      = "recipes"
	KeyArchive      = "archive"
)

// Backend stores opaque record values per owner. Implementations must be
// safe for concurrent use.
type Backend interface {
	GetRecord(ctx context.Context, owner, key string) ([]byte, error)
	PutRecord(ctx context.Context, owner, key string, value []byte) error
	DeleteRecord(ctx context.Context, owner, key string) error
}

// Store hands out owner-scoped record access
type Store struct {
	backend Backend
}

// New creates a store over the given backend
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// For returns the records of one owner
func (s *Store) For(owner string) *Records {
	return &Records{backend: s.backend, owner: owner}
}

// Records is the typed view of one owner's records. Every load decodes a
// fresh value, so callers never share mutable state.
type Records struct {
	backend Backend
	owner   string
}

// Owner returns the owner the records belong to
func (r *Records) Owner() string {
	return r.owner
}

// LoadShoppingList returns the stored list, or nil when none exists
func (r *Records) LoadShoppingList(ctx context.Context) (*models.ShoppingList, error) {
	var list models.ShoppingList
	found, err := r.load(ctx, KeyShoppingList, &list)
	if err != nil || !found {
		return nil, err
	}
	return &list, nil
}

// SaveShoppingList replaces the stored list
func (r *Records) SaveShoppingList(ctx context.Context, list *models.ShoppingList) error {
	return r.save(ctx, KeyShoppingList, list)
}

// ClearShoppingList removes the stored list
func (r *Records) ClearShoppingList(ctx context.Context) error {
	if err := r.backend.DeleteRecord(ctx, r.owner, KeyShoppingList); err != nil {
		return fmt.Errorf("failed to clear %s: %w", KeyShoppingList, err)
	}
	return nil
}

// LoadArchive returns all archive entries in append order
func (r *Records) LoadArchive(ctx context.Context) ([]models.ArchiveEntry, error) {
	entries := []models.ArchiveEntry{}
	if _, err := r.load(ctx, KeyArchive, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveArchive replaces the whole archive collection
func (r *Records) SaveArchive(ctx context.Context, entries []models.ArchiveEntry) error {
	if entries == nil {
		entries = []models.ArchiveEntry{}
	}
	return r.save(ctx, KeyArchive, entries)
}

// LoadRecipes returns all recipes
func (r *Records) LoadRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if _, err := r.load(ctx, KeyRecipes, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipes replaces the whole recipe collection
func (r *Records) SaveRecipes(ctx context.Context, recipes []models.Recipe) error {
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return r.save(ctx, KeyRecipes, recipes)
}

func (r *Records) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.backend.GetRecord(ctx, r.owner, key)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Records) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := r.backend.PutRecord(ctx, r.owner, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
