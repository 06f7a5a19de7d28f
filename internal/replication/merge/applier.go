package merge

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/iudanet/socialmesh/internal/crdt"
	"github.com/iudanet/socialmesh/internal/models"
	"github.com/iudanet/socialmesh/internal/server/storage"
)

// ErrInvalidEntity входящая сущность не прошла структурную проверку.
var ErrInvalidEntity = errors.New("invalid entity")

// lockStripes количество полос для per-entity блокировок.
// Полосатые мьютексы дают почти бесконфликтное применение разных
// сущностей без map с мьютексом на каждую.
const lockStripes = 64

// Applier единственная точка записи реплицированных сущностей.
// Broadcast и reconciliation проходят через него, поэтому LWW-правила
// и обновление часов применяются одинаково для обоих путей.
type Applier struct {
	logger  *slog.Logger
	storage storage.EntityStorage
	clock   *crdt.LamportClock
	stripes [lockStripes]sync.Mutex
}

// NewApplier создает applier поверх хранилища и часов узла.
func NewApplier(store storage.EntityStorage, clock *crdt.LamportClock, logger *slog.Logger) *Applier {
	return &Applier{
		logger:  logger,
		storage: store,
		clock:   clock,
	}
}

// Apply применяет одну удаленную сущность по LWW-правилам.
// Возвращает true, если версия выиграла и записана, false для
// идемпотентного no-op. Часы подтягиваются по timestamp сущности
// независимо от исхода, чтобы локальные записи не отставали.
func (a *Applier) Apply(ctx context.Context, entity *models.ReplicatedEntity) (bool, error) {
	if err := validate(entity); err != nil {
		return false, err
	}

	a.clock.Update(entity.Timestamp)

	stripe := &a.stripes[stripeFor(entity.ID)]
	stripe.Lock()
	defer stripe.Unlock()

	applied, err := a.storage.SaveEntity(ctx, entity)
	if err != nil {
		return false, fmt.Errorf("failed to apply entity: %w", err)
	}

	if applied {
		a.logger.Debug("entity applied",
			"entity_id", entity.ID,
			"kind", entity.Kind,
			"timestamp", entity.Timestamp,
			"origin", entity.OriginPeer,
		)
	}

	return applied, nil
}

// ApplyBatch применяет пачку сущностей по порядку.
// Возвращает количество выигравших версий. Ошибка на любой сущности
// прерывает пачку: вызывающий не должен двигать курсор дальше нее.
func (a *Applier) ApplyBatch(ctx context.Context, entities []*models.ReplicatedEntity) (int, error) {
	applied := 0
	for _, e := range entities {
		ok, err := a.Apply(ctx, e)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}

func validate(entity *models.ReplicatedEntity) error {
	if entity == nil {
		return fmt.Errorf("%w: nil entity", ErrInvalidEntity)
	}
	if entity.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntity)
	}
	if !models.ValidKind(entity.Kind) {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntity, entity.Kind)
	}
	if entity.AuthorID == "" {
		return fmt.Errorf("%w: empty author id", ErrInvalidEntity)
	}
	if entity.OriginPeer == "" {
		return fmt.Errorf("%w: empty origin peer", ErrInvalidEntity)
	}
	if entity.Timestamp <= 0 {
		return fmt.Errorf("%w: non-positive timestamp", ErrInvalidEntity)
	}
	// Лайки и комментарии обязаны ссылаться на пост
	if entity.Kind != models.KindPost && entity.SubjectID == "" {
		return fmt.Errorf("%w: %s without subject", ErrInvalidEntity, entity.Kind)
	}
	return nil
}

func stripeFor(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % lockStripes)
}
