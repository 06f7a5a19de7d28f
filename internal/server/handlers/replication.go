package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/merge"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
	"github.com/iudanet/socialmesh/internal/replication/registry"
	"github.com/iudanet/socialmesh/internal/server/storage"
	"github.com/iudanet/socialmesh/pkg/api"
)

const (
	defaultPullLimit = 500
	maxPullLimit     = 1000
)

// PeerRegistrar часть реестра, видимая replication handler'у.
type PeerRegistrar interface {
	RegisterAndExchange(ctx context.Context, rawURL string) (bool, error)
	KnownURLs() []string
	Counts() (known, healthy int)
}

// BroadcastApplier применяет входящую сущность по LWW-правилам.
type BroadcastApplier interface {
	Apply(ctx context.Context, entity *models.ReplicatedEntity) (bool, error)
}

// ReplicationHandler обслуживает межузловые endpoints: регистрацию
// пиров, прием broadcast, reconciliation pull и liveness. Эти маршруты
// не требуют JWT - как и пользовательские узлы друг другу не известны.
type ReplicationHandler struct {
	logger   *slog.Logger
	registry PeerRegistrar
	applier  BroadcastApplier
	storage  storage.EntityStorage
	nodeID   string
}

// NewReplicationHandler создает handler межузловых запросов.
func NewReplicationHandler(
	logger *slog.Logger,
	reg PeerRegistrar,
	applier BroadcastApplier,
	entityStorage storage.EntityStorage,
	nodeID string,
) *ReplicationHandler {
	return &ReplicationHandler{
		logger:   logger,
		registry: reg,
		applier:  applier,
		storage:  entityStorage,
		nodeID:   nodeID,
	}
}

// RegisterPeer обрабатывает POST /api/v1/peers/register
// В ответ узел отдает собственный список пиров: обмен работает
// в обе стороны за один запрос.
func (h *ReplicationHandler) RegisterPeer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterPeerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	added, err := h.registry.RegisterAndExchange(ctx, req.URL)
	if err != nil {
		if errors.Is(err, registry.ErrSelfRegistration) {
			sendError(h.logger, w, "cannot register this node as its own peer", http.StatusBadRequest)
			return
		}
		h.logger.WarnContext(ctx, "peer registration rejected",
			slog.String("url", req.URL),
			slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	status := "known"
	if added {
		status = "added"
	}

	resp := api.RegisterPeerResponse{
		Status:     status,
		KnownPeers: h.registry.KnownURLs(),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Peers обрабатывает GET /api/v1/peers
func (h *ReplicationHandler) Peers(w http.ResponseWriter, r *http.Request) {
	resp := api.PeersResponse{Peers: h.registry.KnownURLs()}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ReceiveBroadcast обрабатывает POST /api/v1/replication/broadcast
// Прием идемпотентен: повтор того же действия отвечает applied=false.
func (h *ReplicationHandler) ReceiveBroadcast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.BroadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	kind, ok := peerapi.KindForAction(req.Action)
	if !ok {
		sendError(h.logger, w, "unknown action: "+req.Action, http.StatusBadRequest)
		return
	}

	entity := peerapi.EntityFromWire(req.Entity)
	if entity.Kind != kind {
		sendError(h.logger, w, "entity kind does not match action", http.StatusBadRequest)
		return
	}

	applied, err := h.applier.Apply(ctx, entity)
	if err != nil {
		if errors.Is(err, merge.ErrInvalidEntity) {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to apply broadcast",
			slog.String("entity_id", entity.ID),
			slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.BroadcastResponse{Status: "ok", Applied: applied}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Pull обрабатывает GET /api/v1/replication/pull?since=N&limit=L
// Отдает сущности с sequence больше since по возрастанию и новый курсор.
func (h *ReplicationHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	since := int64(0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			sendError(h.logger, w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	limit := defaultPullLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			sendError(h.logger, w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > maxPullLimit {
		limit = maxPullLimit
	}

	entities, err := h.storage.ListEntitiesSince(ctx, since, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list entities", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	wire := make([]api.Entity, 0, len(entities))
	newCursor := since
	for _, e := range entities {
		wire = append(wire, peerapi.EntityToWire(e))
		if e.Seq > newCursor {
			newCursor = e.Seq
		}
	}

	resp := api.PullResponse{Entities: wire, NewCursor: newCursor}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Ping обрабатывает GET /api/v1/ping
func (h *ReplicationHandler) Ping(w http.ResponseWriter, r *http.Request) {
	resp := api.PingResponse{Status: "ok", NodeID: h.nodeID}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Status обрабатывает GET /api/v1/status
func (h *ReplicationHandler) Status(w http.ResponseWriter, r *http.Request) {
	known, healthy := h.registry.Counts()
	resp := api.StatusResponse{
		Status:       "ok",
		NodeID:       h.nodeID,
		KnownPeers:   known,
		HealthyPeers: healthy,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
