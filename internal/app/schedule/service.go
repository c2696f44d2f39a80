package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/metrics"
	"github.com/preston-bernstein/season-weeks-service/internal/store"
	"github.com/preston-bernstein/season-weeks-service/internal/weeks"
)

var (
	// ErrUnknownSeason is returned for season IDs that are not configured.
	ErrUnknownSeason = errors.New("unknown season")
	// ErrUnknownLeague is returned when a season maps to a league missing from the registry.
	ErrUnknownLeague = errors.New("unknown league")
)

// WeekSchedule is the ordered set of week ranges for one season.
type WeekSchedule struct {
	SeasonID int64
	League   leagues.League
	Ranges   []weeks.WeekRange
}

// Current is the resolved current week for one season.
type Current struct {
	SeasonID   int64
	League     leagues.League
	Week       int
	Resolution weeks.Resolution
	Range      *weeks.WeekRange
	AsOf       time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the wall clock used for current-week lookups.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service coordinates schedule storage and week math for configured seasons.
type Service struct {
	store    store.Store
	leagues  *leagues.Registry
	seasons  map[int64]string
	now      func() time.Time
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a Service. seasons maps season ID to league name.
func NewService(st store.Store, registry *leagues.Registry, seasons map[int64]string, opts ...Option) *Service {
	if registry == nil {
		registry = leagues.NewRegistry(nil)
	}
	copied := make(map[int64]string, len(seasons))
	for id, name := range seasons {
		copied[id] = name
	}
	s := &Service{
		store:   st,
		leagues: registry,
		seasons: copied,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seasons returns configured season IDs, ascending.
func (s *Service) Seasons() []int64 {
	ids := make([]int64, 0, len(s.seasons))
	for id := range s.seasons {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// League resolves the league bound to a season.
func (s *Service) League(seasonID int64) (leagues.League, error) {
	name, ok := s.seasons[seasonID]
	if !ok {
		return leagues.League{}, fmt.Errorf("%w: %d", ErrUnknownSeason, seasonID)
	}
	league, ok := s.leagues.Lookup(name)
	if !ok {
		return leagues.League{}, fmt.Errorf("%w: %s", ErrUnknownLeague, name)
	}
	return league, nil
}

// Calculator builds a week calculator for a season's league.
func (s *Service) Calculator(seasonID int64) (*weeks.Calculator, error) {
	league, err := s.League(seasonID)
	if err != nil {
		return nil, err
	}
	return weeks.New(league, weeks.WithClock(s.now)), nil
}

// Games returns a season's games.
func (s *Service) Games(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	if _, ok := s.seasons[seasonID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeason, seasonID)
	}
	return s.store.ListGames(ctx, seasonID)
}

// GameByID returns a single game if present.
func (s *Service) GameByID(ctx context.Context, id int64) (domaingames.Game, bool, error) {
	return s.store.GetGame(ctx, id)
}

// GamesForWeek returns the games scheduled in one week of a season.
func (s *Service) GamesForWeek(ctx context.Context, seasonID int64, week int) ([]domaingames.Game, error) {
	all, err := s.Games(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	out := make([]domaingames.Game, 0)
	for _, g := range all {
		if g.Week == week {
			out = append(out, g)
		}
	}
	return out, nil
}

// ReplaceGames swaps a season's games with a new snapshot.
func (s *Service) ReplaceGames(ctx context.Context, seasonID int64, games []domaingames.Game) error {
	if _, ok := s.seasons[seasonID]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSeason, seasonID)
	}
	if err := s.store.SetGames(ctx, seasonID, games); err != nil {
		return err
	}
	logging.Info(s.logger, "season games replaced",
		logging.FieldSeasonID, seasonID,
		logging.FieldCount, len(games),
	)
	return nil
}

// WeekRanges returns a season's week ranges ordered by week.
func (s *Service) WeekRanges(ctx context.Context, seasonID int64) (WeekSchedule, error) {
	calc, err := s.Calculator(seasonID)
	if err != nil {
		return WeekSchedule{}, err
	}
	games, err := s.store.ListGames(ctx, seasonID)
	if err != nil {
		return WeekSchedule{}, err
	}
	return WeekSchedule{
		SeasonID: seasonID,
		League:   calc.League(),
		Ranges:   weeks.Sorted(calc.Ranges(games)),
	}, nil
}

// CurrentWeek resolves the current week of a season.
func (s *Service) CurrentWeek(ctx context.Context, seasonID int64) (Current, error) {
	calc, err := s.Calculator(seasonID)
	if err != nil {
		return Current{}, err
	}
	games, err := s.store.ListGames(ctx, seasonID)
	if err != nil {
		return Current{}, err
	}

	now := s.now().In(calc.Location())
	ranges := calc.Ranges(games)
	league := calc.League()
	week, rule := weeks.Resolve(ranges, now, league)

	current := Current{
		SeasonID:   seasonID,
		League:     league,
		Week:       week,
		Resolution: rule,
		AsOf:       now,
	}
	if r, ok := ranges[week]; ok {
		current.Range = &r
	}

	s.recorder.RecordWeekResolution(league.Name, week, rule == weeks.SeasonOver)
	logging.FromContext(ctx, s.logger).Debug("current week resolved",
		logging.FieldSeasonID, seasonID,
		logging.FieldLeague, league.Name,
		logging.FieldWeek, week,
		"resolution", rule,
	)
	return current, nil
}
