package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
)

// peerTimeout бюджет на доставку одному пиру. Короче, чем health probe:
// broadcast best-effort, пропущенное действие доедет через reconciliation.
const peerTimeout = 2 * time.Second

// PeerRegistry часть реестра, нужная propagator'у.
type PeerRegistry interface {
	BroadcastTargets() []models.Peer
	MarkUnreachable(url string)
}

// Propagator рассылает локальные действия всем доступным пирам.
// Доставка best-effort: сбой отдельного пира не влияет на остальных
// и никогда не откатывает локальную запись.
type Propagator struct {
	logger   *slog.Logger
	client   peerapi.API
	registry PeerRegistry
	wg       sync.WaitGroup
}

// NewPropagator создает propagator поверх реестра и межузлового клиента.
func NewPropagator(reg PeerRegistry, client peerapi.API, logger *slog.Logger) *Propagator {
	return &Propagator{
		logger:   logger,
		client:   client,
		registry: reg,
	}
}

// Propagate доставляет сущность всем broadcast-целям параллельно.
// Блокируется до завершения рассылки; вызывающие, которым не нужен
// результат, запускают ее в отдельной горутине. Возвращает число пиров,
// подтвердивших прием.
func (p *Propagator) Propagate(ctx context.Context, entity *models.ReplicatedEntity) int {
	targets := p.registry.BroadcastTargets()
	if len(targets) == 0 {
		return 0
	}

	req := peerapi.BroadcastRequestFor(entity)

	var mu sync.Mutex
	delivered := 0

	var wg sync.WaitGroup
	for _, peer := range targets {
		wg.Add(1)
		p.wg.Add(1)

		go func(peerURL string) {
			defer wg.Done()
			defer p.wg.Done()

			peerCtx, cancel := context.WithTimeout(ctx, peerTimeout)
			defer cancel()

			resp, err := p.client.Broadcast(peerCtx, peerURL, req)
			if err != nil {
				if errors.Is(err, peerapi.ErrPeerUnreachable) {
					p.registry.MarkUnreachable(peerURL)
				}
				p.logger.Warn("broadcast delivery failed",
					"peer", peerURL,
					"entity_id", entity.ID,
					"error", err,
				)
				return
			}

			p.logger.Debug("broadcast delivered",
				"peer", peerURL,
				"entity_id", entity.ID,
				"applied", resp.Applied,
			)

			mu.Lock()
			delivered++
			mu.Unlock()
		}(peer.URL)
	}

	wg.Wait()
	return delivered
}

// Wait дожидается завершения всех запущенных рассылок. Для shutdown.
func (p *Propagator) Wait() {
	p.wg.Wait()
}
