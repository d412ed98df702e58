package models

import (
	"time"
)

// ShoppingItem represents one line of the shopping list
type ShoppingItem struct {
	Name    string `json:"name"`
	Amount  Amount `json:"amount"`
	Unit    string `json:"unit"`
	Checked bool   `json:"checked"`
}

// DisplayAmount returns the amount with its unit. Text amounts ignore the unit.
func (i ShoppingItem) DisplayAmount() string {
	if !i.Amount.IsNumeric() || i.Unit == "" {
		return i.Amount.String()
	}
	return i.Amount.String() + " " + i.Unit
}

// ShoppingList is the owner's single active list
type ShoppingList struct {
	Items     []ShoppingItem `json:"items"`
	RecipeIDs []string       `json:"recipe_ids,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsEmpty reports whether the list is absent or has no items
func (l *ShoppingList) IsEmpty() bool {
	return l == nil || len(l.Items) == 0
}

// Request types

// ImportListRequest is the request body for importing a markdown checklist
type ImportListRequest struct {
	Content string `json:"content"`
	Append  bool   `json:"append"`
}

// RecipeSelection picks a recipe and the servings to shop for
type RecipeSelection struct {
	RecipeID string `json:"recipe_id"`
	Servings int    `json:"servings"`
}

// GenerateListRequest is the request body for building a list from recipes
type GenerateListRequest struct {
	Recipes []RecipeSelection `json:"recipes"`
}

// CheckItemRequest sets the checked flag of a list item
type CheckItemRequest struct {
	Checked bool `json:"checked"`
}
