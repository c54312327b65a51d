package server

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	flashCookieName = "flash"
	flashSuccess    = "success"
	flashDanger     = "danger"
)

// flashMessage is a one-shot notice shown on the next rendered page.
type flashMessage struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// setFlash stores a notice for the next page load.
func setFlash(c *fiber.Ctx, category, message string) {
	payload, err := json.Marshal(flashMessage{Message: message, Category: category})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending flash, if any. A cookie that
// fails to decode is dropped silently.
func takeFlash(c *fiber.Ctx) *flashMessage {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flash flashMessage
	if err := json.Unmarshal(decoded, &flash); err != nil {
		return nil
	}
	return &flash
}
