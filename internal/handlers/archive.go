package handlers

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/fridgelist/internal/models"
	"github.com/foxxcyber/fridgelist/internal/services"
)

// ListArchive returns the archive grouped by month
func (h *Handler) ListArchive(c *fiber.Ctx) error {
	groups, err := h.archive.List(c.Context(), h.records(c))
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, h.formatter.RenderArchiveList(groups))
}

// GetArchiveEntry returns one archived trip
func (h *Handler) GetArchiveEntry(c *fiber.Ctx) error {
	entry, err := h.archive.Get(c.Context(), h.records(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, h.formatter.RenderArchiveDetail(entry))
}

// CreateArchiveEntry archives the current list. Accepts JSON with an
// optional receipt data URL, or multipart with a receipt_image file.
func (h *Handler) CreateArchiveEntry(c *fiber.Ctx) error {
	var input services.ArchiveInput

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		input = services.ArchiveInput{
			StoreName: c.FormValue("store_name"),
			Amount:    c.FormValue("amount"),
			Date:      c.FormValue("date"),
		}

		if file, err := c.FormFile("receipt_image"); err == nil {
			image, status, message := h.readImage(file)
			if message != "" {
				return Error(c, status, message)
			}
			input.ReceiptImage = image
		}
	} else {
		var req models.CreateArchiveRequest
		if err := c.BodyParser(&req); err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid request body")
		}
		input = services.ArchiveInput{
			StoreName:    req.StoreName,
			Amount:       string(req.Amount),
			Date:         req.Date,
			ReceiptImage: req.ReceiptImage,
		}
	}

	result, err := h.archive.Create(c.Context(), h.records(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: result})
}

// ScanReceipt runs OCR over a receipt photo and suggests form values
func (h *Handler) ScanReceipt(c *fiber.Ctx) error {
	if h.scanner == nil {
		return Error(c, fiber.StatusServiceUnavailable, "Belegerkennung ist nicht aktiviert")
	}

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "receipt_image file is required")
	}
	if check := h.validator.ValidateImageFile(file.Header.Get("Content-Type"), file.Size); !check.Valid {
		return Error(c, fiber.StatusBadRequest, check.Error)
	}

	data, err := readFile(file)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read file")
	}

	suggestion, err := h.scanner.Scan(data)
	if err != nil {
		return h.fail(c, err)
	}
	return Success(c, suggestion)
}

// readImage validates an uploaded image and returns it as a data URL.
// On rejection it returns the status and message to send.
func (h *Handler) readImage(file *multipart.FileHeader) (string, int, string) {
	check := h.validator.ValidateImageFile(file.Header.Get("Content-Type"), file.Size)
	if !check.Valid {
		return "", fiber.StatusBadRequest, check.Error
	}

	data, err := readFile(file)
	if err != nil {
		return "", fiber.StatusBadRequest, "failed to read file"
	}

	dataURL, err := h.images.ToDataURL(data)
	if err != nil {
		if services.IsValidationError(err) {
			return "", fiber.StatusBadRequest, err.Error()
		}
		return "", fiber.StatusInternalServerError, "failed to process image"
	}

	normalized, ok := h.sanitizer.ValidateImageDataURL(dataURL)
	if !ok {
		return "", fiber.StatusBadRequest, "Ungültiges Bildformat"
	}
	return normalized, 0, ""
}

func readFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
