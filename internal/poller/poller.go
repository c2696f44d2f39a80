package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
)

const (
	defaultInterval = 5 * time.Minute
	// concurrent season fetches per cycle
	maxParallel = 4
)

// SnapshotWriter persists season snapshots to disk.
type SnapshotWriter interface {
	WriteSeasonSnapshot(seasonID int64, snapshot domaingames.SeasonResponse) error
}

// Target receives refreshed schedules.
type Target interface {
	Seasons() []int64
	League(seasonID int64) (leagues.League, error)
	ReplaceGames(ctx context.Context, seasonID int64, games []domaingames.Game) error
}

// Poller refreshes every configured season on an interval.
type Poller struct {
	provider providers.GameProvider
	target   Target
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.GameProvider, target Target, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		target:   target,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		defer close(p.stopped)
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for it to exit or ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshSeason fetches and stores one season immediately.
func (p *Poller) RefreshSeason(ctx context.Context, seasonID int64) (int, error) {
	if p.provider == nil || p.target == nil {
		return 0, providers.ErrProviderUnavailable
	}
	league, err := p.target.League(seasonID)
	if err != nil {
		return 0, err
	}
	games, err := p.provider.FetchGames(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("season %d: %w", seasonID, err)
	}
	if err := p.target.ReplaceGames(ctx, seasonID, games); err != nil {
		return 0, fmt.Errorf("season %d: %w", seasonID, err)
	}
	if p.writer != nil {
		writeErr := p.writer.WriteSeasonSnapshot(seasonID, domaingames.NewSeasonResponse(seasonID, league.Name, games))
		p.metrics.RecordSnapshotWrite(writeErr)
		if writeErr != nil {
			p.logError("poller snapshot write failed", writeErr, logging.FieldSeasonID, seasonID)
		}
	}
	return len(games), nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(p.now())

	var (
		mu    sync.Mutex
		errs  []error
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, id := range p.seasons() {
		id := id
		g.Go(func() error {
			n, err := p.RefreshSeason(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			total += n
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.logError("poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, p.now())
		return
	}
	p.recordSuccess(p.now())
	p.logInfo("poller refreshed seasons",
		logging.FieldCount, total,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) seasons() []int64 {
	if p.target == nil {
		return nil
	}
	return p.target.Seasons()
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.GameProvider {
	return p.provider
}
