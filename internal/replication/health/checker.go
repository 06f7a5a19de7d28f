package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
)

const (
	// probeTimeout бюджет одного liveness-опроса.
	probeTimeout = 3 * time.Second
	// maxConcurrentProbes ограничение на параллельные опросы,
	// чтобы большой реестр не открывал сотни соединений разом.
	maxConcurrentProbes = 8
)

// PeerRegistry часть реестра, нужная health checker'у.
type PeerRegistry interface {
	List() []models.Peer
	MarkHealthy(url string)
	MarkUnreachable(url string)
}

// Checker периодически опрашивает все известные пиры и обновляет их
// статусы. Unreachable пиры опрашиваются наравне с остальными: узел,
// вернувшийся в сеть, снова станет Healthy в следующем цикле.
type Checker struct {
	logger   *slog.Logger
	client   peerapi.API
	registry PeerRegistry
	sem      *semaphore.Weighted
}

// NewChecker создает health checker поверх реестра и межузлового клиента.
func NewChecker(reg PeerRegistry, client peerapi.API, logger *slog.Logger) *Checker {
	return &Checker{
		logger:   logger,
		client:   client,
		registry: reg,
		sem:      semaphore.NewWeighted(maxConcurrentProbes),
	}
}

// Probe опрашивает один пир и обновляет его статус в реестре.
// Возвращает true, если пир ответил.
func (c *Checker) Probe(ctx context.Context, peerURL string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := c.client.Ping(probeCtx, peerURL)
	if err != nil {
		c.registry.MarkUnreachable(peerURL)
		c.logger.Debug("peer probe failed", "peer", peerURL, "error", err)
		return false
	}

	c.registry.MarkHealthy(peerURL)
	c.logger.Debug("peer probe ok", "peer", peerURL, "node_id", resp.NodeID)
	return true
}

// CheckAll опрашивает все известные пиры с ограниченным параллелизмом.
// Возвращает количество пиров, ответивших на опрос.
func (c *Checker) CheckAll(ctx context.Context) int {
	peers := c.registry.List()
	if len(peers) == 0 {
		return 0
	}

	var mu sync.Mutex
	alive := 0

	var wg sync.WaitGroup
	for _, peer := range peers {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			// Контекст отменен - оставшиеся пиры не опрашиваем
			break
		}

		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			defer c.sem.Release(1)

			if c.Probe(ctx, url) {
				mu.Lock()
				alive++
				mu.Unlock()
			}
		}(peer.URL)
	}

	wg.Wait()

	c.logger.Info("health check cycle complete", "peers", len(peers), "alive", alive)
	return alive
}
