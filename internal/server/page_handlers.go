package server

import (
	"github.com/gofiber/fiber/v2"
)

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{})
}

// Contact renders the static contact page.
func (s *Server) Contact(c *fiber.Ctx) error {
	return s.render(c, "contact", fiber.Map{})
}
