package fixture

import (
	"context"
	"fmt"
	"strings"
	"time"
	// Embedded zone data keeps fixture kickoffs stable on hosts without tzdata.
	_ "time/tzdata"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/providers"
)

const (
	nflTeams = 32
	nbaTeams = 30
	// Games that started this long ago are reported final.
	gameLength = 4 * time.Hour
)

type slot struct {
	dayOffset int
	hour, min int
	primetime string
	network   string
}

// NFL slots are offsets from the week's Thursday.
var nflSlots = []slot{
	{0, 20, 15, "TNF", "Prime Video"},
	{3, 13, 0, "", "CBS"},
	{3, 16, 25, "", "FOX"},
	{3, 20, 20, "SNF", "NBC"},
	{4, 20, 15, "MNF", "ESPN"},
}

// NBA slots are offsets from the week's Monday.
var nbaSlots = []slot{
	{1, 19, 30, "", "TNT"},
	{2, 19, 0, "", "ESPN"},
	{4, 20, 0, "", "NBA TV"},
	{6, 15, 30, "", "ABC"},
}

// Provider returns deterministic league schedules for local runs and tests.
type Provider struct {
	seasons map[int64]string
	now     func() time.Time
	loc     *time.Location
}

// New creates a fixture provider; seasons maps season ID to league name.
func New(seasons map[int64]string) *Provider {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	copied := make(map[int64]string, len(seasons))
	for id, name := range seasons {
		copied[id] = strings.ToLower(name)
	}
	return &Provider{
		seasons: copied,
		now:     time.Now,
		loc:     loc,
	}
}

// FetchGames returns the full schedule of a configured season.
func (p *Provider) FetchGames(ctx context.Context, seasonID int64) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch p.seasons[seasonID] {
	case leagues.NFL:
		return p.nflSeason(seasonID), nil
	case leagues.NBA:
		return p.nbaSeason(seasonID), nil
	default:
		return nil, providers.Permanent(fmt.Errorf("fixture: no schedule for season %d", seasonID))
	}
}

// nflSeason is the 2025 regular season: 18 weeks opening Thursday 2025-09-04,
// plus an unscheduled exhibition.
func (p *Provider) nflSeason(seasonID int64) []domaingames.Game {
	games := []domaingames.Game{
		p.game(seasonID, 0, 0, time.Date(2025, time.July, 31, 20, 0, 0, 0, p.loc), slot{network: "NBC"}, 1, 2),
	}
	opener := time.Date(2025, time.September, 4, 0, 0, 0, 0, p.loc)
	for week := 1; week <= 18; week++ {
		thursday := opener.AddDate(0, 0, 7*(week-1))
		for k, s := range nflSlots {
			home, away := pairing(week, k, nflTeams)
			games = append(games, p.game(seasonID, week, k, thursday, s, home, away))
		}
	}
	return games
}

// nbaSeason is 25 Monday-start weeks opening the week of 2025-10-20, plus a
// preseason game.
func (p *Provider) nbaSeason(seasonID int64) []domaingames.Game {
	games := []domaingames.Game{
		p.game(seasonID, 0, 0, time.Date(2025, time.October, 3, 19, 0, 0, 0, p.loc), slot{network: "NBA TV"}, 3, 4),
	}
	firstMonday := time.Date(2025, time.October, 20, 0, 0, 0, 0, p.loc)
	for week := 1; week <= 25; week++ {
		monday := firstMonday.AddDate(0, 0, 7*(week-1))
		for k, s := range nbaSlots {
			home, away := pairing(week, k, nbaTeams)
			games = append(games, p.game(seasonID, week, k, monday, s, home, away))
		}
	}
	return games
}

func (p *Provider) game(seasonID int64, week, k int, anchor time.Time, s slot, home, away int64) domaingames.Game {
	y, m, d := anchor.Date()
	hour, min := s.hour, s.min
	if week == 0 {
		hour, min = anchor.Hour(), anchor.Minute()
	}
	start := time.Date(y, m, d+s.dayOffset, hour, min, 0, 0, p.loc)
	id := seasonID*10000 + int64(week)*10 + int64(k)

	g := domaingames.Game{
		ID:         id,
		SeasonID:   seasonID,
		ESPNID:     fmt.Sprintf("fx%d", id),
		HomeTeamID: home,
		AwayTeamID: away,
		StartTime:  start.UTC().Format(time.RFC3339),
		DayOfWeek:  start.Weekday().String(),
		Week:       week,
		Primetime:  s.primetime,
		Network:    s.network,
		Status:     domaingames.StatusUpcoming,
	}

	now := p.now()
	switch {
	case now.After(start.Add(gameLength)):
		homeScore, awayScore := score(id)
		g.HomeScore, g.AwayScore = &homeScore, &awayScore
		g.Status = domaingames.StatusFinal
	case !now.Before(start):
		g.Status = domaingames.StatusInProgress
	}
	return g
}

// pairing rotates opponents so no team plays itself.
func pairing(week, k, teams int) (int64, int64) {
	home := (2*k+week)%teams + 1
	away := (2*k+1+3*week)%teams + 1
	if away == home {
		away = away%teams + 1
	}
	return int64(home), int64(away)
}

func score(id int64) (int, int) {
	return int(10 + id%31), int(7 + (id/7)%28)
}
