package views

import (
	"github.com/foxxcyber/fridgelist/internal/models"
)

// RecipeEditView is the recipe edit form
type RecipeEditView struct {
	Title        string                 `json:"title"`
	Back         *Navigation            `json:"back,omitempty"`
	ID           string                 `json:"id,omitempty"`
	Name         string                 `json:"name,omitempty"`
	Servings     int                    `json:"servings,omitempty"`
	Image        string                 `json:"image,omitempty"`
	Instructions string                 `json:"instructions,omitempty"`
	Rows         []models.IngredientRow `json:"rows,omitempty"`
	Units        []string               `json:"units,omitempty"`
	Empty        *EmptyState            `json:"empty,omitempty"`
}

// RenderRecipeEdit describes the edit form for a recipe and its working
// rows. A nil recipe renders the not-found state.
func RenderRecipeEdit(recipe *models.Recipe, rows []models.IngredientRow, image string, units []string) RecipeEditView {
	if recipe == nil {
		empty := RecipeNotFound
		return RecipeEditView{Title: "Rezept bearbeiten", Empty: &empty}
	}

	return RecipeEditView{
		Title:        "Rezept bearbeiten",
		Back:         NavigateTo(RouteRecipeDetail, "recipeId", recipe.ID),
		ID:           recipe.ID,
		Name:         recipe.Name,
		Servings:     recipe.Servings,
		Image:        image,
		Instructions: recipe.Instructions,
		Rows:         append([]models.IngredientRow(nil), rows...),
		Units:        units,
	}
}
