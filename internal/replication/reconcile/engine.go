package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
	"github.com/iudanet/socialmesh/internal/server/storage"
)

const (
	// pullTimeout бюджет одного pull-запроса. Длиннее health probe:
	// ответ может нести полный батч сущностей.
	pullTimeout = 5 * time.Second
	// pullBatchLimit максимальный размер одного pull-батча.
	pullBatchLimit = 500
)

// PeerRegistry часть реестра, нужная reconciliation engine.
type PeerRegistry interface {
	List() []models.Peer
	MarkUnreachable(url string)
	SetSyncCursor(url string, cursor int64)
}

// Applier применяет пачку удаленных сущностей по LWW-правилам.
type Applier interface {
	ApplyBatch(ctx context.Context, entities []*models.ReplicatedEntity) (int, error)
}

// Engine выполняет периодическую cursor-based досинхронизацию с пирами.
// Это страховочный контур: все, что broadcast не доставил (узел лежал,
// таймаут, новый участник сети), доезжает через pull.
type Engine struct {
	logger   *slog.Logger
	client   peerapi.API
	registry PeerRegistry
	applier  Applier
	cursors  storage.CursorStorage
}

// NewEngine создает reconciliation engine.
func NewEngine(
	reg PeerRegistry,
	client peerapi.API,
	applier Applier,
	cursors storage.CursorStorage,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		logger:   logger,
		client:   client,
		registry: reg,
		applier:  applier,
		cursors:  cursors,
	}
}

// ReconcileWith вытягивает с пира все сущности с его sequence больше
// сохраненного курсора и применяет их. Курсор двигается только после
// применения всего батча: при сбое посередине следующий цикл повторит
// батч, LWW сделает повтор идемпотентным.
func (e *Engine) ReconcileWith(ctx context.Context, peerURL string) error {
	cursor, err := e.cursors.GetCursor(ctx, peerURL)
	if err != nil {
		return fmt.Errorf("failed to load cursor: %w", err)
	}

	totalApplied := 0
	for {
		pullCtx, cancel := context.WithTimeout(ctx, pullTimeout)
		resp, err := e.client.PullSince(pullCtx, peerURL, cursor, pullBatchLimit)
		cancel()
		if err != nil {
			if errors.Is(err, peerapi.ErrPeerUnreachable) {
				e.registry.MarkUnreachable(peerURL)
			}
			return fmt.Errorf("pull from %s failed: %w", peerURL, err)
		}

		if len(resp.Entities) == 0 {
			break
		}

		batch := make([]*models.ReplicatedEntity, 0, len(resp.Entities))
		for _, wire := range resp.Entities {
			batch = append(batch, peerapi.EntityFromWire(wire))
		}

		applied, err := e.applier.ApplyBatch(ctx, batch)
		totalApplied += applied
		if err != nil {
			// Курсор не двигаем - недоприменённый батч придет снова
			return fmt.Errorf("failed to apply batch from %s: %w", peerURL, err)
		}

		if err := e.cursors.SaveCursor(ctx, peerURL, resp.NewCursor); err != nil {
			return fmt.Errorf("failed to save cursor: %w", err)
		}
		e.registry.SetSyncCursor(peerURL, resp.NewCursor)
		cursor = resp.NewCursor

		// Неполный батч означает, что пир выдал все, что у него было
		if len(resp.Entities) < pullBatchLimit {
			break
		}
	}

	if totalApplied > 0 {
		e.logger.Info("reconciliation applied entities",
			"peer", peerURL,
			"applied", totalApplied,
			"cursor", cursor,
		)
	}
	return nil
}

// ReconcileAll проходит по всем пирам реестра, пропуская Unreachable:
// их вернет в оборот health checker. Сбой одного пира не прерывает
// остальных.
func (e *Engine) ReconcileAll(ctx context.Context) {
	for _, peer := range e.registry.List() {
		if peer.Status == models.PeerStatusUnreachable {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		if err := e.ReconcileWith(ctx, peer.URL); err != nil {
			e.logger.Warn("reconciliation failed", "peer", peer.URL, "error", err)
		}
	}
}
