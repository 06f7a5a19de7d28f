package models

import "time"

// PeerStatus статус доступности пира.
type PeerStatus string

const (
	// PeerStatusUnknown пир зарегистрирован, но еще ни разу не проверялся.
	// Broadcast относится к Unknown оптимистично и отправляет действия.
	PeerStatusUnknown PeerStatus = "unknown"
	// PeerStatusHealthy последняя проверка прошла успешно.
	PeerStatusHealthy PeerStatus = "healthy"
	// PeerStatusUnreachable последняя проверка провалилась.
	// Пир не удаляется из реестра - он будет переопрошен в следующем цикле.
	PeerStatusUnreachable PeerStatus = "unreachable"
)

// Peer представляет другой узел сети в реестре.
// Идентичность пира - нормализованный URL (scheme://host:port).
type Peer struct {
	LastSeenAt     time.Time  `json:"last_seen_at"`     // время последнего успешного контакта
	URL            string     `json:"url"`              // нормализованный базовый URL
	Status         PeerStatus `json:"status"`           // текущий статус доступности
	LastSyncCursor int64      `json:"last_sync_cursor"` // последний вытянутый remote sequence
}

// User представляет пользователя локального узла.
type User struct {
	ID           string    `json:"id"`            // UUID пользователя
	Username     string    `json:"username"`      // уникальный username
	PasswordHash string    `json:"password_hash"` // bcrypt хеш пароля
	CreatedAt    time.Time `json:"created_at"`    // время создания
	UpdatedAt    time.Time `json:"updated_at"`    // время последнего обновления
}
