package storage

import (
	"context"

	"github.com/iudanet/socialmesh/internal/models"
)

//go:generate moq -out user_mock.go . UserStorage

// UserStorage определяет интерфейс для работы с пользователями.
type UserStorage interface {
	// CreateUser создает нового пользователя.
	// Возвращает ErrUserAlreadyExists, если username занят.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername возвращает пользователя по username.
	// Возвращает ErrUserNotFound, если пользователь не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
