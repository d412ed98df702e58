package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/fridgelist/internal/config"
	"github.com/foxxcyber/fridgelist/internal/middleware"
)

// RegisterRoutes mounts the API on app
func RegisterRoutes(app *fiber.App, h *Handler, cfg *config.Config) {
	// Health check
	app.Get("/health", h.Health)

	api := app.Group("/api")

	// Device sessions (public)
	api.Post("/session", h.CreateSession)

	// Shopping list
	lists := api.Group("/shopping-list", middleware.AuthRequired(cfg))
	lists.Get("/", h.GetShoppingList)
	lists.Delete("/", h.ClearShoppingList)
	lists.Post("/import", h.ImportShoppingList)
	lists.Post("/generate", h.GenerateShoppingList)
	lists.Post("/items/:index/check", h.CheckShoppingItem)

	// Fridge check
	fridge := api.Group("/fridge-check", middleware.AuthRequired(cfg))
	fridge.Get("/", h.OpenFridgeCheck)
	fridge.Delete("/", h.CloseFridgeCheck)
	fridge.Post("/items/:index/toggle", h.ToggleFridgeItem)
	fridge.Put("/items/:index/have", h.SetFridgeHaveAmount)
	fridge.Post("/apply", h.ApplyFridgeCheck)

	// Archive
	archive := api.Group("/archive", middleware.AuthRequired(cfg))
	archive.Get("/", h.ListArchive)
	archive.Post("/", h.CreateArchiveEntry)
	archive.Post("/scan", h.ScanReceipt)
	archive.Get("/:id", h.GetArchiveEntry)

	// Recipes
	recipes := api.Group("/recipes", middleware.AuthRequired(cfg))
	recipes.Get("/", h.ListRecipes)
	recipes.Post("/", h.CreateRecipe)
	recipes.Get("/:id", h.GetRecipe)
	recipes.Get("/:id/edit", h.EditRecipe)
	recipes.Put("/:id", h.UpdateRecipe)
	recipes.Delete("/:id", h.DeleteRecipe)
}
