package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/allinhq/allin-backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.PreferredLanguage = strings.TrimSpace(user.PreferredLanguage)
}

func ValidateRegistration(user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed with registration")
	}
	if user.Username == "" {
		return fmt.Errorf("a username is required to register")
	}
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("a valid email is required to register")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	return nil
}
