package server

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles the POST branch of the post view. The gate lives
// here rather than on the route so an anonymous submission redirects
// with a flash and the comment text is discarded, not queued.
func (s *Server) AddComment(c *fiber.Ctx) error {
	user := sessionUser(c)
	if user == nil {
		setFlash(c, flashDanger, "You need to login or register to comment.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	_, err = s.commentService.AddComment(c.UserContext(), service.AddCommentInput{
		AuthorID: user.ID,
		PostID:   id,
		Text:     c.FormValue("comment"),
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation:
			setFlash(c, flashDanger, models.ErrorMessage(err))
			return c.Redirect(fmt.Sprintf("/show_post/%d", id), fiber.StatusSeeOther)
		default:
			return err
		}
	}

	return c.Redirect(fmt.Sprintf("/show_post/%d", id), fiber.StatusSeeOther)
}
