package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// ListRecipes returns all recipes
func (h *Handler) ListRecipes(c *fiber.Ctx) error {
	recipes, err := h.recipes.List(c.Context(), h.records(c))
	if err != nil {
		return h.fail(c, err)
	}
	return SuccessWithMeta(c, recipes, len(recipes))
}

// GetRecipe returns one recipe
func (h *Handler) GetRecipe(c *fiber.Ctx) error {
	recipe, err := h.recipes.Get(c.Context(), h.records(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, recipe)
}

// CreateRecipe stores a new recipe
func (h *Handler) CreateRecipe(c *fiber.Ctx) error {
	var form models.RecipeForm
	if err := c.BodyParser(&form); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	recipe, err := h.recipes.Create(c.Context(), h.records(c), form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: recipe})
}

// EditRecipe returns the edit form for a recipe
func (h *Handler) EditRecipe(c *fiber.Ctx) error {
	editor, err := h.recipes.Editor(c.Context(), h.records(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, editor.View())
}

// UpdateRecipe submits the edit form. The rows sent replace the stored
// ingredients; a missing image keeps the stored one.
func (h *Handler) UpdateRecipe(c *fiber.Ctx) error {
	var form models.RecipeForm
	if err := c.BodyParser(&form); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	editor, err := h.recipes.Editor(c.Context(), h.records(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	editor.SetRows(form.Ingredients)
	if form.Image != nil {
		if err := editor.SetImage(*form.Image); err != nil {
			return h.fail(c, err)
		}
	}

	saved, err := editor.Submit(c.Context(), form)
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, saved)
}

// DeleteRecipe removes a recipe
func (h *Handler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipes.Delete(c.Context(), h.records(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return Success(c, fiber.Map{"message": "Rezept gelöscht"})
}
