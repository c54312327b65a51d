package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "session"
	sessionIssuer     = "inkwell"
	sessionAudience   = "inkwell-web"
	sessionTTL        = 7 * 24 * time.Hour
)

// newSessionToken mints a signed session token for the given user.
func (s *Server) newSessionToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    sessionIssuer,
		Audience:  jwt.ClaimStrings{sessionAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// parseSessionToken validates a session token and returns the user ID
// it was issued for.
func (s *Server) parseSessionToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithAudience(sessionAudience))
	if err != nil || !token.Valid {
		return 0, models.NewAuthRequiredError("Invalid or expired session")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, models.NewAuthRequiredError("Invalid session subject")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewAuthRequiredError("Invalid session subject")
	}
	return uint(userID), nil
}

// issueSession transitions the visitor to Authenticated(userID).
func (s *Server) issueSession(c *fiber.Ctx, userID uint) error {
	tokenString, err := s.newSessionToken(userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	middleware.SessionsIssued.Inc()
	return nil
}

// clearSession transitions the visitor back to Anonymous.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// loadSessionUser resolves the authenticated user once per request. The
// user row is re-read from the database every time so a cookie never
// outlives the account it points at; any failure degrades to Anonymous.
func (s *Server) loadSessionUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(sessionCookieName)
		if tokenString == "" {
			return c.Next()
		}

		userID, err := s.parseSessionToken(tokenString)
		if err != nil {
			s.clearSession(c)
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			s.clearSession(c)
			return c.Next()
		}

		c.Locals("currentUser", user)
		c.Locals("userID", user.ID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// sessionUser returns the user resolved by loadSessionUser, or nil for
// anonymous requests.
func sessionUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("currentUser").(*models.User); ok {
		return user
	}
	return nil
}
