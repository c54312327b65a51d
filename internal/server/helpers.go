package server

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// gravatarURL returns the avatar image for an email, used when
// rendering comment authors.
func gravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=retro&s=60", hex.EncodeToString(sum[:]))
}

// parsePostID extracts the :id route parameter. A non-numeric id is
// indistinguishable from a missing post.
func parsePostID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewNotFoundError("Post", raw)
	}
	return uint(id), nil
}

// render merges the session user and any pending flash into the view data.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["User"] = sessionUser(c)
	if flash := takeFlash(c); flash != nil {
		data["Flash"] = flash
	}
	return c.Render(name, data)
}
