package storage

import (
	"context"

	"github.com/iudanet/socialmesh/internal/models"
)

//go:generate moq -out data_mock.go . EntityStorage

// EntityStorage определяет интерфейс LocalStore для реплицируемых сущностей.
// Ядро репликации владеет записями только через этот интерфейс и никогда
// не держит собственной авторитетной копии.
type EntityStorage interface {
	// SaveEntity создает или обновляет сущность по правилам LWW.
	// Store-local sequence присваивается в той же транзакции при каждой
	// выигравшей записи. Возвращает true, если запись была применена,
	// false - если существующая версия новее или идентична (идемпотентный no-op).
	SaveEntity(ctx context.Context, entity *models.ReplicatedEntity) (bool, error)

	// GetEntity возвращает неудаленную сущность по ID.
	// Возвращает ErrEntityNotFound, если сущности нет или она soft-deleted.
	GetEntity(ctx context.Context, id string) (*models.ReplicatedEntity, error)

	// FindLike ищет лайк по паре (пост, автор), включая soft-deleted версии.
	// Используется для toggle-семантики unlike.
	FindLike(ctx context.Context, postID, authorID string) (*models.ReplicatedEntity, error)

	// ListEntitiesSince возвращает сущности (включая удаленные) с
	// sequence > since в порядке возрастания sequence. Используется
	// обработчиком reconciliation pull.
	ListEntitiesSince(ctx context.Context, since int64, limit int) ([]*models.ReplicatedEntity, error)

	// MaxTimestamp возвращает максимальный Lamport timestamp в хранилище.
	// Используется для восстановления часов после рестарта.
	MaxTimestamp(ctx context.Context) (int64, error)

	// ListPosts возвращает страницу неудаленных постов, новые первыми.
	ListPosts(ctx context.Context, limit, offset int) ([]*models.ReplicatedEntity, error)

	// CountLikes возвращает количество неудаленных лайков поста.
	CountLikes(ctx context.Context, postID string) (int, error)

	// HasLiked проверяет, лайкнул ли пользователь пост.
	HasLiked(ctx context.Context, postID, authorID string) (bool, error)

	// ListComments возвращает неудаленные комментарии поста, старые первыми.
	ListComments(ctx context.Context, postID string) ([]*models.ReplicatedEntity, error)
}
