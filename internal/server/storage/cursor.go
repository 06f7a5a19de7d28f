package storage

import "context"

//go:generate moq -out cursor_mock.go . CursorStorage

// CursorStorage определяет интерфейс для per-peer курсоров синхронизации.
// Курсор - последний remote sequence, успешно вытянутый с данного пира.
// Продвижение курсора - последний шаг батча reconciliation, поэтому
// сохранение должно быть durable (вместе с сущностями).
type CursorStorage interface {
	// GetCursor возвращает сохраненный курсор для пира.
	// Если курсора нет (первая синхронизация) - возвращает 0 без ошибки.
	GetCursor(ctx context.Context, peerURL string) (int64, error)

	// SaveCursor сохраняет курсор для пира.
	SaveCursor(ctx context.Context, peerURL string, seq int64) error
}
