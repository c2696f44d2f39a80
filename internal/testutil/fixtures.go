package testutil

import (
	"time"
	_ "time/tzdata"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

// SampleGame returns a minimal game fixture for season 1.
func SampleGame(id int64, week int, startTime string) domaingames.Game {
	return domaingames.Game{
		ID:         id,
		SeasonID:   1,
		HomeTeamID: 10,
		AwayTeamID: 20,
		StartTime:  startTime,
		Week:       week,
		Status:     domaingames.StatusUpcoming,
	}
}

// SampleSeasonResponse builds a SeasonResponse with one game in week 1.
func SampleSeasonResponse(seasonID int64, league string) domaingames.SeasonResponse {
	g := SampleGame(seasonID*100+1, 1, "2025-09-04T20:20:00-04:00")
	g.SeasonID = seasonID
	return domaingames.NewSeasonResponse(seasonID, league, []domaingames.Game{g})
}

// NFLWeeks returns one Thursday game per week for the first n weeks of the
// 2025 NFL season, opening 2025-09-04.
func NFLWeeks(n int) []domaingames.Game {
	out := make([]domaingames.Game, 0, n)
	for w := 1; w <= n; w++ {
		day := 4 + (w-1)*7
		start := nflKickoff(day)
		out = append(out, SampleGame(int64(w), w, start))
	}
	return out
}

func nflKickoff(septemberDay int) string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return time.Date(2025, time.September, septemberDay, 20, 20, 0, 0, loc).Format(time.RFC3339)
}
