package services

import (
	"context"
	"strings"
	"time"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// ShoppingListService handles the active shopping list
type ShoppingListService struct {
	parser *ShoppingListParser
}

// NewShoppingListService creates a new shopping list service
func NewShoppingListService(parser *ShoppingListParser) *ShoppingListService {
	return &ShoppingListService{parser: parser}
}

// Get returns the active list
func (s *ShoppingListService) Get(ctx context.Context, records Records) (*models.ShoppingList, error) {
	list, err := records.LoadShoppingList(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrNoShoppingList
	}
	return list, nil
}

// Import parses a markdown checklist into the list. With appendItems the
// parsed items go after the existing ones, otherwise they replace them.
func (s *ShoppingListService) Import(ctx context.Context, records Records, req models.ImportListRequest) (*models.ShoppingList, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, invalid("Bitte füge eine Einkaufsliste ein")
	}

	items, err := s.parser.Parse(req.Content)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if len(items) == 0 {
		return nil, invalid("Keine Artikel gefunden")
	}

	now := time.Now()
	list := &models.ShoppingList{CreatedAt: now}
	if req.Append {
		existing, err := records.LoadShoppingList(ctx)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			list = existing
		}
	}

	list.Items = append(list.Items, items...)
	list.UpdatedAt = now
	if err := records.SaveShoppingList(ctx, list); err != nil {
		return nil, persistence("save shopping list", err)
	}
	return list, nil
}

// SetChecked marks one item as bought or not
func (s *ShoppingListService) SetChecked(ctx context.Context, records Records, index int, checked bool) (*models.ShoppingList, error) {
	list, err := s.Get(ctx, records)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list.Items) {
		return nil, ErrItemIndexOutOfRange
	}

	list.Items[index].Checked = checked
	list.UpdatedAt = time.Now()
	if err := records.SaveShoppingList(ctx, list); err != nil {
		return nil, persistence("save shopping list", err)
	}
	return list, nil
}

// Clear removes the active list
func (s *ShoppingListService) Clear(ctx context.Context, records Records) error {
	if err := records.ClearShoppingList(ctx); err != nil {
		return persistence("clear shopping list", err)
	}
	return nil
}
