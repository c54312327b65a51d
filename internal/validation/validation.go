// Package validation contains input format checks shared by services and handlers.
package validation

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
)

// ValidateEmail checks that the address parses as a bare RFC 5322 address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid address")
	}
	return nil
}

// ValidateImageURL checks that the value is a well-formed absolute http(s) URL.
func ValidateImageURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("image URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("image URL must be a valid URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("image URL must be an absolute http or https URL")
	}
	return nil
}
