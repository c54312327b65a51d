package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// RegisterPage renders the signup form.
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{})
}

// Register creates the account and logs the new user straight in.
func (s *Server) Register(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, "register", fiber.Map{
			"Error": "Invalid form submission",
		})
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeValidation:
			return s.render(c, "register", fiber.Map{
				"Error": models.ErrorMessage(err),
				"Form":  form,
			})
		case models.CodeConflict:
			setFlash(c, flashDanger, models.ErrorMessage(err))
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			return err
		}
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return err
	}
	setFlash(c, flashSuccess, "Registration Successful!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginPage renders the login form.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "login", fiber.Map{})
}

// Login authenticates the visitor and starts a session.
func (s *Server) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return s.render(c, "login", fiber.Map{
			"Error": "Invalid form submission",
		})
	}

	user, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeBadCredentials:
			setFlash(c, flashDanger, models.ErrorMessage(err))
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			return err
		}
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout discards the session token.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
