package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат username
// Только латинские буквы (a-z, A-Z), цифры (0-9), нижнее подчеркивание (_)
// Длина: 3-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPostLen максимальная длина текста поста
	MaxPostLen = 4096
	// MaxCommentLen максимальная длина комментария
	MaxCommentLen = 1024
)

// ValidateUsername проверяет, что username соответствует требованиям.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidatePostContent проверяет текст поста.
func ValidatePostContent(content string) error {
	if content == "" {
		return fmt.Errorf("post content cannot be empty")
	}
	if len(content) > MaxPostLen {
		return fmt.Errorf("post content must not exceed %d bytes", MaxPostLen)
	}
	return nil
}

// ValidateCommentText проверяет текст комментария.
func ValidateCommentText(text string) error {
	if text == "" {
		return fmt.Errorf("comment text cannot be empty")
	}
	if len(text) > MaxCommentLen {
		return fmt.Errorf("comment text must not exceed %d bytes", MaxCommentLen)
	}
	return nil
}
