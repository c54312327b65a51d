// Package auth provides password hashing and verification.
//
// Digests use PBKDF2-SHA256 and are stored in the form
//
//	pbkdf2:sha256:600000$<salt>$<hex digest>
//
// which is the same self-describing format the application has always
// written, so existing rows keep verifying. The salt is an explicit
// 8-character random string; the iteration count is embedded in the
// digest, so it can be raised later without breaking old hashes.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	defaultIterations = 600000
	saltLength        = 8
)

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashPassword derives a PBKDF2-SHA256 digest for the given plaintext.
func HashPassword(plaintext string) (string, error) {
	salt, err := randomSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("auth: generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), []byte(salt), defaultIterations, sha256.Size, sha256.New)
	return fmt.Sprintf("pbkdf2:sha256:%d$%s$%s", defaultIterations, salt, hex.EncodeToString(key)), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// The comparison is constant-time; a malformed digest never matches.
func CheckPassword(digest, plaintext string) bool {
	method, salt, wantHex, ok := parseDigest(digest)
	if !ok {
		return false
	}

	iterations, ok := parseIterations(method)
	if !ok {
		return false
	}

	want, err := hex.DecodeString(wantHex)
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// parseDigest splits "method$salt$hash" into its parts.
func parseDigest(digest string) (method, salt, hash string, ok bool) {
	parts := strings.SplitN(digest, "$", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// parseIterations extracts the iteration count from "pbkdf2:sha256:N".
func parseIterations(method string) (int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) != 3 || fields[0] != "pbkdf2" || fields[1] != "sha256" {
		return 0, false
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func randomSalt(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}
	return string(buf), nil
}
