package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/validation"
)

// RecipeService manages the recipe collection
type RecipeService struct {
	validator *validation.Validator
	sanitizer *validation.Sanitizer
	log       *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(validator *validation.Validator, sanitizer *validation.Sanitizer, log *zap.Logger) *RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{validator: validator, sanitizer: sanitizer, log: log}
}

// List returns all recipes
func (s *RecipeService) List(ctx context.Context, records Records) ([]models.Recipe, error) {
	return records.LoadRecipes(ctx)
}

// Get returns one recipe by id
func (s *RecipeService) Get(ctx context.Context, records Records, id string) (*models.Recipe, error) {
	recipes, err := records.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}
	recipe, ok := findRecipe(recipes, id)
	if !ok {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

// Editor opens an editor for the recipe
func (s *RecipeService) Editor(ctx context.Context, records Records, id string) (*RecipeEditor, error) {
	return OpenRecipeEditor(ctx, records, s.validator, s.sanitizer, id)
}

// Create validates the form and stores a new recipe
func (s *RecipeService) Create(ctx context.Context, records Records, form models.RecipeForm) (*models.Recipe, error) {
	recipe, err := recipeFromForm(s.validator, form, form.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe.ID = uuid.New().String()

	if form.Image != nil && *form.Image != "" {
		image, ok := s.sanitizer.ValidateImageDataURL(*form.Image)
		if !ok {
			return nil, invalid("Ungültiges Bildformat")
		}
		recipe.Image = image
	}

	recipe = s.sanitizer.SanitizeRecipe(recipe)
	if result := s.validator.ValidateRecipe(recipe); !result.Valid {
		return nil, invalid(strings.Join(result.Errors, "\n"))
	}

	recipes, err := records.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	recipes = append(recipes, recipe)
	if err := records.SaveRecipes(ctx, recipes); err != nil {
		return nil, persistence("save recipes", err)
	}

	s.log.Info("Created recipe", zap.String("recipe_id", recipe.ID), zap.Int("ingredients", len(recipe.Ingredients)))
	return &recipe, nil
}

// Delete removes a recipe
func (s *RecipeService) Delete(ctx context.Context, records Records, id string) error {
	recipes, err := records.LoadRecipes(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recipes) {
		return ErrRecipeNotFound
	}

	if err := records.SaveRecipes(ctx, kept); err != nil {
		return persistence("save recipes", err)
	}
	return nil
}

// Generate builds a fresh shopping list from the selected recipes and stores it
func (s *RecipeService) Generate(ctx context.Context, records Records, selections []models.RecipeSelection) (*models.ShoppingList, error) {
	if len(selections) == 0 {
		return nil, invalid("Bitte wähle mindestens ein Rezept aus")
	}

	recipes, err := records.LoadRecipes(ctx)
	if err != nil {
		return nil, err
	}

	list, err := GenerateShoppingList(recipes, selections)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	list.CreatedAt = now
	list.UpdatedAt = now
	if err := records.SaveShoppingList(ctx, list); err != nil {
		return nil, persistence("save shopping list", err)
	}
	return list, nil
}

// GenerateShoppingList scales each selected recipe to the requested
// servings and merges ingredients with the same name and unit. A
// selection without servings uses the recipe's own.
func GenerateShoppingList(recipes []models.Recipe, selections []models.RecipeSelection) (*models.ShoppingList, error) {
	list := &models.ShoppingList{Items: []models.ShoppingItem{}}
	merged := make(map[string]int)
	amounts := []float64{}

	for _, sel := range selections {
		recipe, ok := findRecipe(recipes, sel.RecipeID)
		if !ok {
			return nil, ErrRecipeNotFound
		}

		servings := sel.Servings
		if servings <= 0 {
			servings = recipe.Servings
		}
		factor := 1.0
		if recipe.Servings > 0 {
			factor = float64(servings) / float64(recipe.Servings)
		}

		for _, ing := range recipe.Ingredients {
			key := strings.ToLower(strings.TrimSpace(ing.Name)) + "|" + strings.ToLower(ing.Unit)
			if i, ok := merged[key]; ok {
				amounts[i] += ing.Amount * factor
				continue
			}
			merged[key] = len(list.Items)
			amounts = append(amounts, ing.Amount*factor)
			list.Items = append(list.Items, models.ShoppingItem{Name: ing.Name, Unit: ing.Unit})
		}
		list.RecipeIDs = append(list.RecipeIDs, recipe.ID)
	}

	for i := range list.Items {
		list.Items[i].Amount = models.NumericAmount(roundHalfUp(amounts[i]))
	}
	return list, nil
}
