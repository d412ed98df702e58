package services

import (
	"context"
	"strings"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/validation"
	"github.com/foxxcyber/fridgelist/internal/views"
)

// RecipeSaved is returned after a successful edit
type RecipeSaved struct {
	Recipe   models.Recipe     `json:"recipe"`
	Message  string            `json:"message"`
	Navigate *views.Navigation `json:"navigate"`
}

// RecipeEditor holds the working state of one recipe edit
type RecipeEditor struct {
	records   Records
	validator *validation.Validator
	sanitizer *validation.Sanitizer
	recipe    models.Recipe
	rows      []models.IngredientRow
	image     string
}

// OpenRecipeEditor loads a recipe for editing. Rows are seeded from its ingredients.
func OpenRecipeEditor(ctx context.Context, records Records, validator *validation.Validator, sanitizer *validation.Sanitizer, id string) (*RecipeEditor, error) {
	recipes, err := records.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	recipe, ok := findRecipe(recipes, id)
	if !ok {
		return nil, ErrRecipeNotFound
	}

	rows := make([]models.IngredientRow, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		rows = append(rows, models.IngredientRow{
			Amount: models.FormValue(models.NumericAmount(ing.Amount).String()),
			Unit:   ing.Unit,
			Name:   ing.Name,
		})
	}

	return &RecipeEditor{
		records:   records,
		validator: validator,
		sanitizer: sanitizer,
		recipe:    recipe,
		rows:      rows,
		image:     recipe.Image,
	}, nil
}

// Recipe returns the recipe as loaded
func (e *RecipeEditor) Recipe() models.Recipe {
	return e.recipe
}

// Rows returns the working ingredient rows
func (e *RecipeEditor) Rows() []models.IngredientRow {
	return e.rows
}

// View renders the edit form
func (e *RecipeEditor) View() views.RecipeEditView {
	return views.RenderRecipeEdit(&e.recipe, e.rows, e.image, validation.Units)
}

// AddRow appends a blank ingredient row
func (e *RecipeEditor) AddRow() {
	e.rows = append(e.rows, models.IngredientRow{})
}

// RemoveRow discards the row at index
func (e *RecipeEditor) RemoveRow(index int) error {
	if index < 0 || index >= len(e.rows) {
		return ErrItemIndexOutOfRange
	}
	e.rows = append(e.rows[:index], e.rows[index+1:]...)
	return nil
}

// SetRows replaces all rows with what the form sent
func (e *RecipeEditor) SetRows(rows []models.IngredientRow) {
	e.rows = append([]models.IngredientRow(nil), rows...)
}

// SetImage replaces the recipe image. An empty value removes it and an
// invalid data URL keeps the current one.
func (e *RecipeEditor) SetImage(dataURL string) error {
	if strings.TrimSpace(dataURL) == "" {
		e.image = ""
		return nil
	}
	image, ok := e.sanitizer.ValidateImageDataURL(dataURL)
	if !ok {
		return invalid("Ungültiges Bildformat")
	}
	e.image = image
	return nil
}

// Submit validates the form and replaces the stored recipe
func (e *RecipeEditor) Submit(ctx context.Context, form models.RecipeForm) (*RecipeSaved, error) {
	updated, err := recipeFromForm(e.validator, form, e.rows)
	if err != nil {
		return nil, err
	}
	updated.ID = e.recipe.ID
	updated.Image = e.image
	updated = e.sanitizer.SanitizeRecipe(updated)

	if result := e.validator.ValidateRecipe(updated); !result.Valid {
		return nil, invalid(strings.Join(result.Errors, "\n"))
	}

	recipes, err := e.records.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range recipes {
		if recipes[i].ID == e.recipe.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrRecipeNotFound
	}

	recipes[index] = updated
	if err := e.records.SaveRecipes(ctx, recipes); err != nil {
		return nil, persistence("save recipes", err)
	}

	e.recipe = recipes[index]
	return &RecipeSaved{
		Recipe:   recipes[index],
		Message:  "Änderungen gespeichert!",
		Navigate: views.NavigateTo(views.RouteRecipeDetail, "recipeId", e.recipe.ID),
	}, nil
}

// recipeFromForm checks name, servings and every ingredient row in that
// order. Any bad row fails the whole form with one message.
func recipeFromForm(v *validation.Validator, form models.RecipeForm, rows []models.IngredientRow) (models.Recipe, error) {
	name := v.ValidateRecipeName(form.Name)
	if !name.Valid {
		return models.Recipe{}, invalid(name.Error)
	}

	servings := v.ValidateServings(string(form.Servings))
	if !servings.Valid {
		return models.Recipe{}, invalid(servings.Error)
	}

	ingredients := make([]models.Ingredient, 0, len(rows))
	for _, row := range rows {
		amount := v.ValidateAmount(string(row.Amount))
		unit := v.ValidateUnit(row.Unit)
		ingName := v.ValidateIngredientName(row.Name)
		if !amount.Valid || !unit.Valid || !ingName.Valid {
			return models.Recipe{}, invalid("Bitte überprüfe die Zutaten")
		}
		ingredients = append(ingredients, models.Ingredient{
			Amount: amount.Float(),
			Unit:   unit.String(),
			Name:   ingName.String(),
		})
	}
	if len(ingredients) == 0 {
		return models.Recipe{}, invalid("Bitte füge mindestens eine Zutat hinzu")
	}

	return models.Recipe{
		Name:         name.String(),
		Servings:     servings.Int(),
		Ingredients:  ingredients,
		Instructions: strings.TrimSpace(form.Instructions),
	}, nil
}

func findRecipe(recipes []models.Recipe, id string) (models.Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recipe{}, false
}
