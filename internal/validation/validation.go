package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

// Ограничения на свободный текст.
const (
	MaxBioLength         = 1000
	MaxDescriptionLength = 5000
	MaxLanguages         = 10
	MinPasswordLength    = 8
)

// ValidateLength проверяет длину строки в символах. max <= 0 означает без
// ограничения сверху.
func ValidateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if min > 0 && n < min {
		return apperror.Validation(fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	if max > 0 && n > max {
		return apperror.Validation(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return nil
}

// ValidatePassword требует минимум 8 символов, букву в обоих регистрах и цифру.
func ValidatePassword(password string) error {
	if err := ValidateLength("password", password, MinPasswordLength, 0); err != nil {
		return err
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		}
	}

	switch {
	case !hasUpper:
		return apperror.Validation("password must contain an uppercase letter")
	case !hasLower:
		return apperror.Validation("password must contain a lowercase letter")
	case !hasNumber:
		return apperror.Validation("password must contain a digit")
	}
	return nil
}
