package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/foxxcyber/fridgelist/internal/middleware"
)

// SessionRequest optionally carries the shared access password
type SessionRequest struct {
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

// SessionResponse carries the device token
type SessionResponse struct {
	Token     string    `json:"token"`
	DeviceID  string    `json:"device_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateSession issues a device token. A known device id keeps its
// records; otherwise a new device is created.
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req SessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	if h.cfg.PasswordRequired() {
		if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AccessPasswordHash), []byte(req.Password)); err != nil {
			return Error(c, fiber.StatusUnauthorized, "Falsches Passwort")
		}
	}

	deviceID := req.DeviceID
	if _, err := uuid.Parse(deviceID); err != nil {
		deviceID = uuid.New().String()
	}

	expiresAt := time.Now().Add(h.cfg.JWTExpiry)
	token, err := h.generateToken(deviceID, expiresAt)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data: SessionResponse{
			Token:     token,
			DeviceID:  deviceID,
			ExpiresAt: expiresAt,
		},
	})
}

// generateToken creates a new JWT token for a device
func (h *Handler) generateToken(deviceID string, expiresAt time.Time) (string, error) {
	claims := &middleware.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   deviceID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
