package distributor

import (
	"log/slog"
	"math/rand/v2"

	"github.com/iudanet/socialmesh/internal/models"
)

// PeerRegistry часть реестра, нужная распределителю нагрузки.
type PeerRegistry interface {
	HealthyPeers() []models.Peer
}

// Distributor распределяет читающие запросы между локальным узлом и
// healthy пирами. Записи всегда выполняются локально - распределение
// касается только чтений, где eventual consistency допускает ответ
// любого узла.
type Distributor struct {
	logger   *slog.Logger
	registry PeerRegistry
	selfURL  string
}

// New создает распределитель. selfURL - нормализованный адрес узла.
func New(reg PeerRegistry, selfURL string, logger *slog.Logger) *Distributor {
	return &Distributor{
		logger:   logger,
		registry: reg,
		selfURL:  selfURL,
	}
}

// SelectRead выбирает узел для обслуживания чтения: равновероятно
// среди healthy пиров и самого себя. Без healthy пиров всегда локально.
func (d *Distributor) SelectRead() string {
	peers := d.registry.HealthyPeers()
	if len(peers) == 0 {
		return d.selfURL
	}

	idx := rand.IntN(len(peers) + 1)
	if idx == len(peers) {
		return d.selfURL
	}

	target := peers[idx].URL
	d.logger.Debug("read delegated", "peer", target)
	return target
}

// IsLocal сообщает, указывает ли выбор на этот узел.
func (d *Distributor) IsLocal(url string) bool {
	return url == d.selfURL
}
