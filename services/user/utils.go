package user

import (
	"fmt"
	"net/mail"
	"strings"

	"localconnect/models"
	"localconnect/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// ValidateSignup checks the fields shared by customer and worker signup.
func ValidateSignup(req models.SignupRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return utils.BadRequest("username is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return utils.BadRequest("a valid email is required")
	}
	return VerifyPasswordComplexity(req.Password)
}

// VerifyPasswordComplexity enforces the minimum password length.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < minPasswordLength {
		return utils.BadRequest("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// HashPassword hashes pw with bcrypt.
func HashPassword(pw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NormalizeSignup trims the request and lowercases the email.
func NormalizeSignup(req models.SignupRequest) models.SignupRequest {
	req.Username = strings.TrimSpace(req.Username)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	return req
}
