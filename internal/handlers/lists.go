package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/fridgelist/internal/models"
)

// GetShoppingList returns the active list
func (h *Handler) GetShoppingList(c *fiber.Ctx) error {
	list, err := h.lists.Get(c.Context(), h.records(c))
	if err != nil {
		return h.fail(c, err)
	}
	return SuccessWithMeta(c, list, len(list.Items))
}

// ClearShoppingList deletes the active list
func (h *Handler) ClearShoppingList(c *fiber.Ctx) error {
	if err := h.lists.Clear(c.Context(), h.records(c)); err != nil {
		return h.fail(c, err)
	}
	h.fridge.Discard(h.records(c).Owner())
	return Success(c, fiber.Map{"message": "Einkaufsliste gelöscht"})
}

// ImportShoppingList parses a markdown checklist into the list
func (h *Handler) ImportShoppingList(c *fiber.Ctx) error {
	var req models.ImportListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	list, err := h.lists.Import(c.Context(), h.records(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: list})
}

// GenerateShoppingList builds a fresh list from recipes
func (h *Handler) GenerateShoppingList(c *fiber.Ctx) error {
	var req models.GenerateListRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	list, err := h.recipes.Generate(c.Context(), h.records(c), req.Recipes)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: list})
}

// CheckShoppingItem sets the checked flag of one item
func (h *Handler) CheckShoppingItem(c *fiber.Ctx) error {
	index, ok := paramIndex(c, "index")
	if !ok {
		return Error(c, fiber.StatusBadRequest, "invalid item index")
	}

	var req models.CheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	list, err := h.lists.SetChecked(c.Context(), h.records(c), index, req.Checked)
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, list)
}
