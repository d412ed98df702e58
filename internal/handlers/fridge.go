package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/services"
	"github.com/foxxcyber/fridgelist/internal/views"
)

// HaveAmountRequest carries the raw amount typed into the fridge check.
// Clients may send it as a string or a number.
type HaveAmountRequest struct {
	Value models.FormValue `json:"value"`
}

// ApplyFridgeRequest confirms applying an empty selection
type ApplyFridgeRequest struct {
	Confirm bool `json:"confirm"`
}

// OpenFridgeCheck starts a new fridge check over the current list
func (h *Handler) OpenFridgeCheck(c *fiber.Ctx) error {
	records := h.records(c)
	check, err := h.fridge.Open(c.Context(), records.Owner(), records)
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, check.View())
}

// ToggleFridgeItem selects or deselects an item
func (h *Handler) ToggleFridgeItem(c *fiber.Ctx) error {
	index, ok := paramIndex(c, "index")
	if !ok {
		return Error(c, fiber.StatusBadRequest, "invalid item index")
	}

	var view views.FridgeView
	open, err := h.fridge.With(h.records(c).Owner(), func(check *services.FridgeCheck) error {
		if err := check.Toggle(index); err != nil {
			return err
		}
		view = check.View()
		return nil
	})
	if !open {
		return h.fridgeNotOpen(c)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, view)
}

// SetFridgeHaveAmount updates the amount on hand. Invalid input keeps the
// previous value and is reported back as not updated.
func (h *Handler) SetFridgeHaveAmount(c *fiber.Ctx) error {
	index, ok := paramIndex(c, "index")
	if !ok {
		return Error(c, fiber.StatusBadRequest, "invalid item index")
	}

	var req HaveAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var view views.FridgeView
	var updated bool
	open, _ := h.fridge.With(h.records(c).Owner(), func(check *services.FridgeCheck) error {
		updated = check.SetHaveAmount(index, string(req.Value))
		view = check.View()
		return nil
	})
	if !open {
		return h.fridgeNotOpen(c)
	}
	return Success(c, fiber.Map{"updated": updated, "view": view})
}

// ApplyFridgeCheck writes the reconciled list
func (h *Handler) ApplyFridgeCheck(c *fiber.Ctx) error {
	var req ApplyFridgeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	owner := h.records(c).Owner()
	var result *services.ReconcileResult
	open, err := h.fridge.With(owner, func(check *services.FridgeCheck) error {
		var err error
		result, err = check.Apply(c.Context(), req.Confirm)
		return err
	})
	if !open {
		return h.fridgeNotOpen(c)
	}
	if err != nil {
		return h.fail(c, err)
	}

	if result.Outcome != services.OutcomeNeedsConfirmation {
		h.fridge.Discard(owner)
	}
	return Success(c, result)
}

// CloseFridgeCheck discards the open check
func (h *Handler) CloseFridgeCheck(c *fiber.Ctx) error {
	h.fridge.Discard(h.records(c).Owner())
	return Success(c, fiber.Map{"navigate": views.NavigateTo(views.RouteShopping)})
}

func (h *Handler) fridgeNotOpen(c *fiber.Ctx) error {
	return Error(c, fiber.StatusConflict, "Kein Kühlschrank-Check geöffnet")
}
