package api

import (
	"encoding/json"
	"time"
)

// Action виды реплицируемых действий. Закрытое множество.
const (
	ActionNewPost    = "new_post"
	ActionNewLike    = "new_like"
	ActionNewComment = "new_comment"
)

// Entity представляет одну реплицируемую сущность на проводе.
type Entity struct {
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	AuthorID   string          `json:"author_id"`
	AuthorName string          `json:"author_name"`
	SubjectID  string          `json:"subject_id,omitempty"`
	OriginPeer string          `json:"origin_peer"`
	Payload    json.RawMessage `json:"payload"`
	Seq        int64           `json:"seq"`
	Timestamp  int64           `json:"timestamp"`
	Deleted    bool            `json:"deleted"`
}

// RegisterPeerRequest запрос на регистрацию пира.
type RegisterPeerRequest struct {
	URL string `json:"url"`
}

// RegisterPeerResponse ответ на регистрацию.
// KnownPeers возвращается, чтобы регистрирующийся узел сразу получил
// список пиров этого узла (обмен пирами работает в обе стороны).
type RegisterPeerResponse struct {
	Status     string   `json:"status"` // "added" или "known"
	KnownPeers []string `json:"known_peers"`
}

// PeersResponse список известных пиров (нормализованные URL).
type PeersResponse struct {
	Peers []string `json:"peers"`
}

// BroadcastRequest входящее broadcast-действие от другого узла.
type BroadcastRequest struct {
	Action string `json:"action"`
	Entity Entity `json:"entity"`
}

// BroadcastResponse ответ на broadcast.
// Applied=false означает, что сущность уже известна (идемпотентный no-op).
type BroadcastResponse struct {
	Status  string `json:"status"`
	Applied bool   `json:"applied"`
}

// PullResponse ответ на запрос reconciliation pull.
// NewCursor - максимальный sequence в выданной пачке; вызывающий узел
// сохраняет его как курсор только после применения всех Entities.
type PullResponse struct {
	Entities  []Entity `json:"entities"`
	NewCursor int64    `json:"new_cursor"`
}

// PingResponse ответ на liveness-проверку.
type PingResponse struct {
	Status string `json:"status"`
	NodeID string `json:"node_id"`
}

// StatusResponse сводка состояния узла.
type StatusResponse struct {
	Status       string `json:"status"`
	NodeID       string `json:"node_id"`
	KnownPeers   int    `json:"known_peers"`
	HealthyPeers int    `json:"healthy_peers"`
}
