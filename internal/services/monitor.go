package services

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vinforge/forgedfate/internal/models"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
	"github.com/vinforge/forgedfate/pkg/notify"
)

const (
	DefaultMonitorInterval = 30 * time.Second
	DefaultMonitorWarmUp   = 5 * time.Second
)

type Prober interface {
	Test(ctx context.Context, kind models.DestinationKind, config models.ExportConfig, mode models.ProbeMode) (models.TestResult, error)
}

type ConfigSnapshotter interface {
	Snapshot() models.ConfigSet
}

// MonitorService periodically runs silent probes against every enabled destination.
//
// At most one job is registered with the cron scheduler. Every Start opens a new
// generation: cycles of an older generation still record their results but never
// touch the badges.
type MonitorService struct {
	cron      gocron.Scheduler
	prober    Prober
	configs   ConfigSnapshotter
	badges    *BadgeBoard
	publisher notify.Publisher
	interval  time.Duration
	warmUp    time.Duration

	mu          sync.Mutex
	job         gocron.Job
	generation  uint64
	closed      bool
	lastResults map[models.DestinationKind]models.TestResult

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

type MonitorOption func(*MonitorService)

func WithMonitorInterval(interval time.Duration) MonitorOption {
	return func(m *MonitorService) {
		if interval > 0 {
			m.interval = interval
		}
	}
}

// WithMonitorWarmUp sets the delay before the first cycle. Zero runs it immediately.
func WithMonitorWarmUp(warmUp time.Duration) MonitorOption {
	return func(m *MonitorService) {
		if warmUp >= 0 {
			m.warmUp = warmUp
		}
	}
}

func WithMonitorPublisher(pub notify.Publisher) MonitorOption {
	return func(m *MonitorService) {
		if pub != nil {
			m.publisher = pub
		}
	}
}

func NewMonitorService(prober Prober, configs ConfigSnapshotter, badges *BadgeBoard, opts ...MonitorOption) (*MonitorService, error) {
	logger := zap.S().Named("monitor_service")

	cron, err := gocron.NewScheduler(gocron.WithLogger(cronLogger{logger: logger.Named("cron")}))
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &MonitorService{
		cron:        cron,
		prober:      prober,
		configs:     configs,
		badges:      badges,
		publisher:   notify.Nop{},
		interval:    DefaultMonitorInterval,
		warmUp:      DefaultMonitorWarmUp,
		lastResults: make(map[models.DestinationKind]models.TestResult),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	cron.Start()

	return m, nil
}

// Start schedules the monitor. It is a no-op when the monitor is already running.
func (m *MonitorService) Start() error {
	m.mu.Lock()

	if m.closed {
		m.mu.Unlock()
		return srvErrors.NewMonitorStateError("monitor is closed")
	}
	if m.job != nil {
		m.mu.Unlock()
		return nil
	}

	m.generation++
	start := gocron.WithStartImmediately()
	if m.warmUp > 0 {
		start = gocron.WithStartDateTime(time.Now().Add(m.warmUp))
	}

	job, err := m.cron.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.cycle, m.generation),
		gocron.WithStartAt(start),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to schedule monitor: %w", err)
	}
	m.job = job
	status := m.status()
	m.mu.Unlock()

	m.logger.Infow("monitor started", "interval", m.interval, "warm_up", m.warmUp)
	m.publish(status)

	return nil
}

// Stop removes the scheduled job. Probes already running complete and record
// their results, but the badges stay as they are.
func (m *MonitorService) Stop() error {
	m.mu.Lock()

	if m.job == nil {
		m.mu.Unlock()
		return nil
	}

	id := m.job.ID()
	m.job = nil
	m.generation++
	status := m.status()
	m.mu.Unlock()

	if err := m.cron.RemoveJob(id); err != nil {
		m.logger.Warnw("failed to remove monitor job", "id", id, "error", err)
	}

	m.logger.Info("monitor stopped")
	m.publish(status)

	return nil
}

func (m *MonitorService) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job != nil
}

func (m *MonitorService) Status() models.MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status()
}

// LastResults returns a copy of the latest result of every kind probed by the monitor.
func (m *MonitorService) LastResults() map[models.DestinationKind]models.TestResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.lastResults)
}

// Close stops the monitor for good and waits for the running cycle.
func (m *MonitorService) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.job = nil
	m.generation++
	m.mu.Unlock()

	err := m.cron.Shutdown()
	m.cancel()
	return err
}

func (m *MonitorService) cycle(generation uint64) {
	// a run handed to the executor before Stop must not test anything
	m.mu.Lock()
	current := m.job != nil && m.generation == generation
	m.mu.Unlock()
	if !current {
		m.logger.Debugw("skipping stale monitor cycle", "generation", generation)
		return
	}

	configs := m.configs.Snapshot()
	kinds := configs.Enabled()
	if len(kinds) == 0 {
		m.logger.Debug("no export enabled, skipping monitor cycle")
		return
	}

	m.logger.Debugw("monitor cycle", "kinds", kinds, "generation", generation)

	g, ctx := errgroup.WithContext(m.ctx)
	for _, kind := range kinds {
		cfg, err := configs.Get(kind)
		if err != nil {
			continue
		}
		g.Go(func() error {
			result, err := m.prober.Test(ctx, kind, cfg, models.ProbeModeSilent)
			if err != nil {
				m.logger.Warnw("background test not run", "kind", kind, "error", err)
				return nil
			}
			m.record(generation, result)
			return nil
		})
	}
	_ = g.Wait()

	m.mu.Lock()
	status := m.status()
	current = m.generation == generation
	m.mu.Unlock()

	if current {
		m.publish(status)
	}
}

func (m *MonitorService) record(generation uint64, result models.TestResult) {
	m.mu.Lock()
	m.lastResults[result.Kind] = result
	current := m.job != nil && m.generation == generation
	m.mu.Unlock()

	if current {
		m.badges.ApplyBackground(result.Kind, result.Status)
	}
}

// must be protected by the caller
func (m *MonitorService) status() models.MonitorStatus {
	status := models.MonitorStatus{
		Enabled:     m.job != nil,
		Interval:    m.interval,
		WarmUp:      m.warmUp,
		LastResults: maps.Clone(m.lastResults),
	}
	if m.job != nil {
		if next, err := m.job.NextRun(); err == nil && !next.IsZero() {
			status.NextRun = &next
		}
	}
	return status
}

func (m *MonitorService) publish(status models.MonitorStatus) {
	event := models.Event{Type: models.EventMonitor, Monitor: &status, Timestamp: time.Now()}
	if err := m.publisher.Publish(context.Background(), event); err != nil {
		m.logger.Warnw("failed to publish monitor status", "error", err)
	}
}

// cronLogger routes the cron scheduler logs to zap.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (c cronLogger) Debug(msg string, args ...any) { c.logger.Debugw(msg, args...) }
func (c cronLogger) Info(msg string, args ...any)  { c.logger.Infow(msg, args...) }
func (c cronLogger) Warn(msg string, args ...any)  { c.logger.Warnw(msg, args...) }
func (c cronLogger) Error(msg string, args ...any) { c.logger.Errorw(msg, args...) }
