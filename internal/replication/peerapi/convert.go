package peerapi

import (
	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/pkg/api"
)

// EntityToWire конвертирует доменную сущность в wire-представление.
func EntityToWire(e *models.ReplicatedEntity) api.Entity {
	return api.Entity{
		ID:         e.ID,
		Kind:       string(e.Kind),
		AuthorID:   e.AuthorID,
		AuthorName: e.AuthorName,
		SubjectID:  e.SubjectID,
		OriginPeer: e.OriginPeer,
		Payload:    e.Payload,
		Seq:        e.Seq,
		Timestamp:  e.Timestamp,
		Deleted:    e.Deleted,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// EntityFromWire конвертирует wire-представление в доменную сущность.
// Seq намеренно не переносится: sequence всегда локален для хранилища,
// принимающая сторона выделит свой.
func EntityFromWire(e api.Entity) *models.ReplicatedEntity {
	return &models.ReplicatedEntity{
		ID:         e.ID,
		Kind:       models.EntityKind(e.Kind),
		AuthorID:   e.AuthorID,
		AuthorName: e.AuthorName,
		SubjectID:  e.SubjectID,
		OriginPeer: e.OriginPeer,
		Payload:    e.Payload,
		Timestamp:  e.Timestamp,
		Deleted:    e.Deleted,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// BroadcastRequestFor строит broadcast-запрос для сущности.
func BroadcastRequestFor(e *models.ReplicatedEntity) api.BroadcastRequest {
	return api.BroadcastRequest{
		Action: ActionForKind(e.Kind),
		Entity: EntityToWire(e),
	}
}

// ActionForKind возвращает broadcast-действие для вида сущности.
func ActionForKind(kind models.EntityKind) string {
	switch kind {
	case models.KindPost:
		return api.ActionNewPost
	case models.KindLike:
		return api.ActionNewLike
	case models.KindComment:
		return api.ActionNewComment
	default:
		return ""
	}
}

// KindForAction возвращает вид сущности для broadcast-действия.
// Второе значение false для неизвестного действия.
func KindForAction(action string) (models.EntityKind, bool) {
	switch action {
	case api.ActionNewPost:
		return models.KindPost, true
	case api.ActionNewLike:
		return models.KindLike, true
	case api.ActionNewComment:
		return models.KindComment, true
	default:
		return "", false
	}
}
