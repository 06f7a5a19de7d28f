package registry

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/replication/peerapi"
	"github.com/iudanet/socialmesh/internal/validation"
)

// ErrSelfRegistration узел пытаются зарегистрировать на самом себе.
var ErrSelfRegistration = errors.New("cannot register self as peer")

// exchangeTimeout верхняя граница фонового обмена списками пиров.
const exchangeTimeout = 5 * time.Second

// peerRecord запись реестра с собственным мьютексом.
// Мьютекс реестра защищает только состав map, статусные переходы
// отдельных пиров не блокируют друг друга.
type peerRecord struct {
	mu   sync.Mutex
	peer models.Peer
}

// Registry хранит известные пиры узла.
// Членство монотонно: пир никогда не удаляется, недоступность
// выражается статусом Unreachable.
type Registry struct {
	logger  *slog.Logger
	client  peerapi.API
	peers   map[string]*peerRecord
	selfURL string
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// New создает реестр. selfURL нормализуется и используется для
// отсечения попыток саморегистрации.
func New(selfURL string, client peerapi.API, logger *slog.Logger) (*Registry, error) {
	normalized, err := validation.NormalizePeerURL(selfURL)
	if err != nil {
		return nil, err
	}

	return &Registry{
		logger:  logger,
		client:  client,
		selfURL: normalized,
		peers:   make(map[string]*peerRecord),
	}, nil
}

// SelfURL возвращает нормализованный адрес этого узла.
func (r *Registry) SelfURL() string {
	return r.selfURL
}

// Register добавляет пир по сырому URL.
// Возвращает true, если пир новый, false - если уже известен.
// Два одинаковых URL в разных написаниях схлопываются нормализацией.
func (r *Registry) Register(rawURL string) (bool, error) {
	normalized, err := validation.NormalizePeerURL(rawURL)
	if err != nil {
		return false, err
	}

	if normalized == r.selfURL {
		return false, ErrSelfRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.peers[normalized]; ok {
		return false, nil
	}

	r.peers[normalized] = &peerRecord{
		peer: models.Peer{
			URL:    normalized,
			Status: models.PeerStatusUnknown,
		},
	}

	r.logger.Info("peer registered", "peer", normalized)
	return true, nil
}

// RegisterAndExchange регистрирует пир и, если он новый, асинхронно
// запрашивает у него список известных пиров и вливает их в реестр.
// Так новый узел транзитивно узнает о всей сети.
func (r *Registry) RegisterAndExchange(ctx context.Context, rawURL string) (bool, error) {
	added, err := r.Register(rawURL)
	if err != nil || !added {
		return added, err
	}

	normalized, _ := validation.NormalizePeerURL(rawURL)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		exchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exchangeTimeout)
		defer cancel()

		urls, err := r.client.KnownPeers(exchCtx, normalized)
		if err != nil {
			r.logger.Warn("peer exchange failed", "peer", normalized, "error", err)
			return
		}

		for _, u := range urls {
			if _, err := r.Register(u); err != nil && !errors.Is(err, ErrSelfRegistration) {
				r.logger.Warn("failed to merge exchanged peer", "url", u, "error", err)
			}
		}
	}()

	return true, nil
}

// Bootstrap представляет этот узел пирам из стартового списка и
// вливает их списки пиров в реестр. Узнанным транзитивно пирам узел
// тоже анонсирует себя, поэтому членство сходится за один bootstrap.
// Недоступный пир не фатален: он остается в реестре и будет
// переопрошен health-циклом.
func (r *Registry) Bootstrap(ctx context.Context, peerURLs []string) {
	announced := make(map[string]bool)

	announce := func(raw string) {
		if _, err := r.Register(raw); err != nil {
			if !errors.Is(err, ErrSelfRegistration) {
				r.logger.Warn("invalid bootstrap peer", "url", raw, "error", err)
			}
			return
		}

		normalized, _ := validation.NormalizePeerURL(raw)
		if announced[normalized] {
			return
		}
		announced[normalized] = true

		resp, err := r.client.RegisterPeer(ctx, normalized, r.selfURL)
		if err != nil {
			r.logger.Warn("bootstrap registration failed", "peer", normalized, "error", err)
			return
		}

		for _, u := range resp.KnownPeers {
			if _, err := r.Register(u); err != nil && !errors.Is(err, ErrSelfRegistration) {
				r.logger.Warn("failed to merge bootstrap peer", "url", u, "error", err)
			}
		}
	}

	for _, raw := range peerURLs {
		announce(raw)
	}

	// Второй проход по пирам, пришедшим из чужих списков
	for _, u := range r.KnownURLs() {
		announce(u)
	}
}

// Wait дожидается завершения фоновых обменов. Используется при shutdown.
func (r *Registry) Wait() {
	r.wg.Wait()
}

// KnownURLs возвращает отсортированный список URL всех известных пиров.
func (r *Registry) KnownURLs() []string {
	r.mu.RLock()
	urls := make([]string, 0, len(r.peers))
	for u := range r.peers {
		urls = append(urls, u)
	}
	r.mu.RUnlock()

	sort.Strings(urls)
	return urls
}

// List возвращает копии всех записей реестра.
func (r *Registry) List() []models.Peer {
	return r.listWhere(func(models.Peer) bool { return true })
}

// BroadcastTargets возвращает пиры, которым стоит слать broadcast:
// Healthy плюс еще не проверенные Unknown.
func (r *Registry) BroadcastTargets() []models.Peer {
	return r.listWhere(func(p models.Peer) bool {
		return p.Status != models.PeerStatusUnreachable
	})
}

// HealthyPeers возвращает пиры со статусом Healthy.
func (r *Registry) HealthyPeers() []models.Peer {
	return r.listWhere(func(p models.Peer) bool {
		return p.Status == models.PeerStatusHealthy
	})
}

func (r *Registry) listWhere(keep func(models.Peer) bool) []models.Peer {
	r.mu.RLock()
	records := make([]*peerRecord, 0, len(r.peers))
	for _, rec := range r.peers {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	peers := make([]models.Peer, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		p := rec.peer
		rec.mu.Unlock()
		if keep(p) {
			peers = append(peers, p)
		}
	}

	sort.Slice(peers, func(i, j int) bool { return peers[i].URL < peers[j].URL })
	return peers
}

// MarkHealthy переводит пир в Healthy и обновляет LastSeenAt.
func (r *Registry) MarkHealthy(url string) {
	r.update(url, func(p *models.Peer) {
		p.Status = models.PeerStatusHealthy
		p.LastSeenAt = time.Now()
	})
}

// MarkUnreachable переводит пир в Unreachable. Запись остается в реестре.
func (r *Registry) MarkUnreachable(url string) {
	r.update(url, func(p *models.Peer) {
		p.Status = models.PeerStatusUnreachable
	})
}

// SetSyncCursor запоминает последний вытянутый с пира sequence.
// Курсор дублируется в хранилище; здесь он нужен для снапшота и статуса.
func (r *Registry) SetSyncCursor(url string, cursor int64) {
	r.update(url, func(p *models.Peer) {
		p.LastSyncCursor = cursor
	})
}

func (r *Registry) update(url string, apply func(*models.Peer)) {
	r.mu.RLock()
	rec, ok := r.peers[url]
	r.mu.RUnlock()
	if !ok {
		return
	}

	rec.mu.Lock()
	apply(&rec.peer)
	rec.mu.Unlock()
}

// Snapshot возвращает состояние реестра для персистентного сохранения.
func (r *Registry) Snapshot() []models.Peer {
	return r.List()
}

// Restore вливает сохраненный снапшот в реестр.
// Статусы сбрасываются в Unknown: после рестарта доступность неизвестна,
// первый health-цикл расставит статусы заново.
func (r *Registry) Restore(peers []models.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range peers {
		if p.URL == r.selfURL {
			continue
		}
		if _, ok := r.peers[p.URL]; ok {
			continue
		}
		restored := p
		restored.Status = models.PeerStatusUnknown
		r.peers[p.URL] = &peerRecord{peer: restored}
	}
}

// Counts возвращает количество известных и healthy пиров для статуса узла.
func (r *Registry) Counts() (known, healthy int) {
	r.mu.RLock()
	records := make([]*peerRecord, 0, len(r.peers))
	for _, rec := range r.peers {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	known = len(records)
	for _, rec := range records {
		rec.mu.Lock()
		if rec.peer.Status == models.PeerStatusHealthy {
			healthy++
		}
		rec.mu.Unlock()
	}
	return known, healthy
}
