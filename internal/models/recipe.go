package models

// Ingredient is one line of a recipe
type Ingredient struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Name   string  `json:"name"`
}

// Recipe represents a stored recipe
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Servings     int          `json:"servings"`
	Image        string       `json:"image,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
}

// IngredientRow is an editable ingredient line as typed into the form
type IngredientRow struct {
	Amount FormValue `json:"amount"`
	Unit   string    `json:"unit"`
	Name   string    `json:"name"`
}

// RecipeForm is the request body for creating or updating a recipe.
// A nil Image keeps the stored image.
type RecipeForm struct {
	Name         string          `json:"name"`
	Servings     FormValue       `json:"servings"`
	Instructions string          `json:"instructions"`
	Ingredients  []IngredientRow `json:"ingredients"`
	Image        *string         `json:"image,omitempty"`
}
