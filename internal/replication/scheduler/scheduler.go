package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	// DefaultHealthInterval период опроса пиров.
	DefaultHealthInterval = 30 * time.Second
	// DefaultReconcileInterval период pull-досинхронизации.
	// Длиннее health-цикла: reconciliation дороже и нужен реже,
	// основную доставку делает broadcast.
	DefaultReconcileInterval = 2 * time.Minute
)

// HealthChecker периодический опрос пиров.
type HealthChecker interface {
	CheckAll(ctx context.Context) int
}

// Reconciler периодическая досинхронизация с пирами.
type Reconciler interface {
	ReconcileAll(ctx context.Context)
}

// Scheduler владеет фоновыми циклами узла: health-опросом и
// reconciliation. Каждый цикл ограничен собственным таймаутом, чтобы
// зависший цикл не накапливал горутины тикер за тикером.
type Scheduler struct {
	logger            *slog.Logger
	health            HealthChecker
	reconcile         Reconciler
	snapshot          func() error
	stopCh            chan struct{}
	healthInterval    time.Duration
	reconcileInterval time.Duration
	wg                sync.WaitGroup
}

// Option настройка планировщика.
type Option func(*Scheduler)

// WithHealthInterval переопределяет период health-цикла.
func WithHealthInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.healthInterval = d }
}

// WithReconcileInterval переопределяет период reconciliation-цикла.
func WithReconcileInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.reconcileInterval = d }
}

// WithSnapshot задает сохранение снапшота реестра после health-цикла.
func WithSnapshot(save func() error) Option {
	return func(s *Scheduler) { s.snapshot = save }
}

// New создает планировщик с дефолтными интервалами.
func New(health HealthChecker, reconcile Reconciler, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:            logger,
		health:            health,
		reconcile:         reconcile,
		stopCh:            make(chan struct{}),
		healthInterval:    DefaultHealthInterval,
		reconcileInterval: DefaultReconcileInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start запускает оба фоновых цикла. Первый health-цикл выполняется
// сразу, чтобы статусы пиров заполнились до первого тика.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(2)

	go func() {
		defer s.wg.Done()

		s.runHealthCycle(ctx)

		ticker := time.NewTicker(s.healthInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runHealthCycle(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.reconcileInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runReconcileCycle(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("scheduler started",
		"health_interval", s.healthInterval,
		"reconcile_interval", s.reconcileInterval,
	)
}

// Stop останавливает циклы и дожидается их завершения.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runHealthCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.healthInterval)
	defer cancel()

	s.health.CheckAll(cycleCtx)

	if s.snapshot != nil {
		if err := s.snapshot(); err != nil {
			s.logger.Warn("failed to save peer snapshot", "error", err)
		}
	}
}

func (s *Scheduler) runReconcileCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.reconcileInterval)
	defer cancel()

	s.reconcile.ReconcileAll(cycleCtx)
}
