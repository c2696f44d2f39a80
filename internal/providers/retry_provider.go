package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GameProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        GameProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, base time.Duration) GameProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, base)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner GameProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, base time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn:    exponentialBackoff(base),
		rng:          rng,
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var lastErr error
	attempt := 0
	op := func() ([]domaingames.Game, error) {
		attempt++
		start := time.Now()
		games, err := r.inner.FetchGames(ctx, seasonID)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		lastErr = err
		return games, err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&retryDelay{provider: r, lastErr: &lastErr}, uint64(r.maxAttempts-1)),
		ctx,
	)
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay", delay,
			logging.FieldSeasonID, seasonID,
			"error", err,
		)
	}

	games, err := backoff.RetryNotifyWithData(op, policy, notify)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"attempts", attempt,
			logging.FieldSeasonID, seasonID,
			"error", err,
		)
		return nil, err
	}
	return games, nil
}

// computeDelay prefers an upstream Retry-After and otherwise jitters the
// exponential backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := int64(base / 2)
	r.rngMu.Lock()
	jitter := r.rng.Int63n(half + 1)
	r.rngMu.Unlock()
	return time.Duration(half + jitter)
}

// retryDelay adapts computeDelay to backoff.BackOff.
type retryDelay struct {
	provider *retryingProvider
	lastErr  *error
	attempt  int
}

func (d *retryDelay) NextBackOff() time.Duration {
	d.attempt++
	return d.provider.computeDelay(*d.lastErr, d.attempt)
}

func (d *retryDelay) Reset() {
	d.attempt = 0
}

func exponentialBackoff(base time.Duration) backoffFunc {
	return func(attempt int) time.Duration {
		b := &backoff.ExponentialBackOff{
			InitialInterval:     base,
			RandomizationFactor: 0,
			Multiplier:          2,
			MaxInterval:         maxBackoff,
			MaxElapsedTime:      0,
			Stop:                backoff.Stop,
			Clock:               backoff.SystemClock,
		}
		b.Reset()
		var d time.Duration
		for i := 0; i < attempt; i++ {
			d = b.NextBackOff()
		}
		return d
	}
}
