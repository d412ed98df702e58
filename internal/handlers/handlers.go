package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/foxxcyber/fridgelist/internal/config"
	"github.com/foxxcyber/fridgelist/internal/middleware"
	"github.com/foxxcyber/fridgelist/internal/services"
	"github.com/foxxcyber/fridgelist/internal/storage"
	"github.com/foxxcyber/fridgelist/internal/validation"
	"github.com/foxxcyber/fridgelist/internal/views"
)

// Handler holds all handler dependencies
type Handler struct {
	cfg       *config.Config
	store     *storage.Store
	log       *zap.Logger
	validator *validation.Validator
	sanitizer *validation.Sanitizer
	formatter *views.Formatter
	images    *services.ImageProcessor
	scanner   *services.ReceiptScanner
	fridge    *services.FridgeSessions
	archive   *services.ArchiveService
	recipes   *services.RecipeService
	lists     *services.ShoppingListService
}

// New creates a new Handler instance. scanner may be nil when OCR is disabled.
func New(cfg *config.Config, store *storage.Store, scanner *services.ReceiptScanner, log *zap.Logger) *Handler {
	validator := validation.NewValidator(cfg.MaxImageBytes)
	sanitizer := validation.NewSanitizer(cfg.MaxImageBytes)
	formatter := views.NewFormatter("de-DE")

	return &Handler{
		cfg:       cfg,
		store:     store,
		log:       log,
		validator: validator,
		sanitizer: sanitizer,
		formatter: formatter,
		images:    services.NewImageProcessor(cfg.ImageMaxDimension),
		scanner:   scanner,
		fridge:    services.NewFridgeSessions(cfg.FridgeCheckTTL),
		archive:   services.NewArchiveService(validator, sanitizer, formatter, log),
		recipes:   services.NewRecipeService(validator, sanitizer, log),
		lists:     services.NewShoppingListService(services.NewShoppingListParser()),
	}
}

// records returns the store of the authenticated device
func (h *Handler) records(c *fiber.Ctx) *storage.Records {
	return h.store.For(middleware.GetOwner(c))
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta contains collection metadata
type Meta struct {
	Total int `json:"total"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMeta returns a successful response with a collection total
func SuccessWithMeta(c *fiber.Ctx, data interface{}, total int) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: total},
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}

// NotFound returns a 404 carrying the empty state to show
func NotFound(c *fiber.Ctx, empty views.EmptyState) error {
	return c.Status(fiber.StatusNotFound).JSON(APIResponse{
		Success: false,
		Data:    fiber.Map{"empty": empty},
		Error:   empty.Title,
	})
}

// fail maps a service error to a response
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var persistenceErr *services.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		return Error(c, fiber.StatusBadRequest, validationErr.Message)
	case errors.As(err, &persistenceErr):
		h.log.Error("Failed to persist records",
			zap.String("op", persistenceErr.Op),
			zap.String("owner", middleware.GetOwner(c)),
			zap.Error(err))
		prefix := "Fehler beim Speichern: "
		if persistenceErr.Archiving() {
			prefix = "Fehler beim Archivieren: "
		}
		return Error(c, fiber.StatusInternalServerError, prefix+err.Error())
	case errors.Is(err, services.ErrNoShoppingList):
		return NotFound(c, views.NoShoppingList)
	case errors.Is(err, services.ErrArchiveEntryNotFound):
		return NotFound(c, views.EntryNotFound)
	case errors.Is(err, services.ErrRecipeNotFound):
		return NotFound(c, views.RecipeNotFound)
	case errors.Is(err, services.ErrSelectionStale):
		return Error(c, fiber.StatusConflict, "Die Einkaufsliste hat sich geändert. Bitte starte den Kühlschrank-Check neu.")
	case errors.Is(err, services.ErrItemIndexOutOfRange):
		return Error(c, fiber.StatusBadRequest, "Ungültiger Artikel")
	}

	h.log.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	return Error(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// paramIndex reads a non-negative integer route parameter
func paramIndex(c *fiber.Ctx, name string) (int, bool) {
	index, err := strconv.Atoi(c.Params(name))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// Health reports liveness
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"storage": h.cfg.StorageBackend,
		"ocr":     h.scanner != nil,
	})
}
