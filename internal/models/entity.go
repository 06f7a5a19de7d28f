package models

import (
	"encoding/json"
	"time"
)

// EntityKind определяет тип реплицируемой сущности.
// Закрытое множество: post, like, comment. Обработка по Kind
// должна быть исчерпывающей (switch без default-ветки создания).
type EntityKind string

const (
	KindPost    EntityKind = "post"
	KindLike    EntityKind = "like"
	KindComment EntityKind = "comment"
)

// ValidKind проверяет, что kind входит в закрытое множество типов.
func ValidKind(kind EntityKind) bool {
	switch kind {
	case KindPost, KindLike, KindComment:
		return true
	}
	return false
}

// ReplicatedEntity представляет единицу репликации между узлами.
// Посты, лайки и комментарии структурно идентичны для целей репликации:
// различается только Kind и содержимое Payload.
type ReplicatedEntity struct {
	CreatedAt time.Time `json:"created_at"` // время создания записи (информационно)

	UpdatedAt  time.Time       `json:"updated_at"`  // время последнего применения версии
	ID         string          `json:"id"`          // глобально уникальный идентификатор (UUID)
	Kind       EntityKind      `json:"kind"`        // тип сущности: post, like, comment
	AuthorID   string          `json:"author_id"`   // идентификатор автора действия
	AuthorName string          `json:"author_name"` // username автора (денормализован для таймлайна)
	SubjectID  string          `json:"subject_id"`  // для like/comment — ID поста; для post пусто
	OriginPeer string          `json:"origin_peer"` // node ID узла, создавшего эту версию
	Payload    json.RawMessage `json:"payload"`     // kind-специфичные поля (JSON)
	Seq        int64           `json:"seq"`         // store-local sequence, присваивается LocalStore
	Timestamp  int64           `json:"timestamp"`   // Lamport timestamp для упорядочивания версий
	Deleted    bool            `json:"deleted"`     // soft delete (unlike = Deleted версия лайка)
}

// PostPayload содержимое поста.
type PostPayload struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`
}

// CommentPayload содержимое комментария.
type CommentPayload struct {
	Text string `json:"text"`
}

// IsNewerThan сравнивает две версии сущности по алгоритму LWW
// (Last-Write-Wins):
// 1. Сначала сравнивается Timestamp (больший выигрывает)
// 2. При равных Timestamp сравнивается OriginPeer (лексикографически)
// Возвращает true, если текущая версия новее, чем other.
func (e *ReplicatedEntity) IsNewerThan(other *ReplicatedEntity) bool {
	if e.Timestamp > other.Timestamp {
		return true
	}
	if e.Timestamp < other.Timestamp {
		return false
	}
	// Timestamps равны - сравниваем OriginPeer для детерминизма
	return e.OriginPeer > other.OriginPeer
}

// Clone создает глубокую копию сущности.
func (e *ReplicatedEntity) Clone() *ReplicatedEntity {
	payload := make(json.RawMessage, len(e.Payload))
	copy(payload, e.Payload)

	return &ReplicatedEntity{
		ID:         e.ID,
		Kind:       e.Kind,
		AuthorID:   e.AuthorID,
		AuthorName: e.AuthorName,
		SubjectID:  e.SubjectID,
		OriginPeer: e.OriginPeer,
		Payload:    payload,
		Seq:        e.Seq,
		Timestamp:  e.Timestamp,
		Deleted:    e.Deleted,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
