package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-weeks-service/internal/calendar"
	"github.com/preston-bernstein/season-weeks-service/internal/config"
	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
	"github.com/preston-bernstein/season-weeks-service/internal/domain/leagues"
	"github.com/preston-bernstein/season-weeks-service/internal/timeutil"
	"github.com/preston-bernstein/season-weeks-service/internal/weeks"
)

// scheduleFlags select a league and where its games come from.
type scheduleFlags struct {
	league   string
	file     string
	seasonID int64
	locale   string
	asJSON   bool
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.league, "league", "l", leagues.NFL, "league name")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "schedule JSON file (array of games or season payload)")
	cmd.Flags().Int64VarP(&f.seasonID, "season", "s", 0, "backend season ID to fetch when no file is given")
	cmd.Flags().StringVar(&f.locale, "locale", "", "label locale, e.g. en-GB or fr")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print JSON instead of a table")
}

func (a *app) league(name string) (leagues.League, error) {
	reg, err := config.LoadLeagues(a.leaguesFile)
	if err != nil {
		return leagues.League{}, err
	}
	l, ok := reg.Lookup(name)
	if !ok {
		return leagues.League{}, fmt.Errorf("unknown league %q (known: %s)", name, strings.Join(reg.Names(), ", "))
	}
	return l, nil
}

func (a *app) loadGames(ctx context.Context, f scheduleFlags) ([]domaingames.Game, error) {
	if f.file != "" {
		return readGamesFile(f.file)
	}
	if f.seasonID <= 0 {
		return nil, errors.New("either --file or --season is required")
	}
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	return c.SeasonGames(ctx, f.seasonID)
}

// readGamesFile accepts a bare games array or a {"games": [...]} payload.
func readGamesFile(path string) ([]domaingames.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var gs []domaingames.Game
		if err := json.Unmarshal(trimmed, &gs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return gs, nil
	}
	var payload domaingames.SeasonResponse
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return payload.Games, nil
}

func (a *app) formatter(f scheduleFlags, l leagues.League) *weeks.Formatter {
	var candidates []string
	if f.locale != "" {
		candidates = append(candidates, f.locale)
	}
	if lang := os.Getenv("LANG"); lang != "" {
		// POSIX locales look like en_GB.UTF-8.
		tag, _, _ := strings.Cut(lang, ".")
		candidates = append(candidates, strings.ReplaceAll(tag, "_", "-"))
	}
	if l.Locale != "" {
		candidates = append(candidates, l.Locale)
	}
	return weeks.NewFormatter(candidates...)
}

func newRangesCmd(a *app) *cobra.Command {
	var f scheduleFlags
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Print the calendar range of every scheduled week",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.league(f.league)
			if err != nil {
				return err
			}
			gs, err := a.loadGames(cmd.Context(), f)
			if err != nil {
				return err
			}
			ranges := weeks.Sorted(weeks.New(l).Ranges(gs))
			fm := a.formatter(f, l)

			if f.asJSON {
				return writeJSON(cmd, ranges)
			}
			if len(ranges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no scheduled weeks")
				return nil
			}
			rows := make([][]string, 0, len(ranges))
			for _, r := range ranges {
				rows = append(rows, []string{
					strconv.Itoa(r.Week),
					timeutil.FormatDate(r.StartDate),
					timeutil.FormatDate(r.EndDate),
					fm.FormatRange(r),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("%s weeks (%s)", strings.ToUpper(l.Name), fm.Locale())))
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Week", "Start", "End", "Label"}, rows, -1))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newCurrentCmd(a *app) *cobra.Command {
	var f scheduleFlags
	var at string
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Resolve the current week of a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.league(f.league)
			if err != nil {
				return err
			}
			now := time.Now()
			if at != "" {
				if now, err = timeutil.ParseInstant(at, l.Location()); err != nil {
					return err
				}
			}
			gs, err := a.loadGames(cmd.Context(), f)
			if err != nil {
				return err
			}
			calc := weeks.New(l)
			ranges := calc.Ranges(gs)
			week, rule := weeks.Resolve(ranges, now.In(calc.Location()), l)

			if f.asJSON {
				out := map[string]any{"league": l.Name, "week": week, "resolution": rule}
				if r, ok := ranges[week]; ok {
					out["range"] = r
				}
				return writeJSON(cmd, out)
			}
			line := fmt.Sprintf("%s week %d (%s)", strings.ToUpper(l.Name), week, rule)
			if r, ok := ranges[week]; ok {
				line += fmt.Sprintf(": %s, ends %s", a.formatter(f, l).FormatRange(r), humanize.RelTime(now, r.EndDate, "ago", "from now"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "evaluate at this date (YYYY-MM-DD or RFC3339) instead of now")
	return cmd
}

func newICSCmd(a *app) *cobra.Command {
	var f scheduleFlags
	var output string
	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export week ranges as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.league(f.league)
			if err != nil {
				return err
			}
			gs, err := a.loadGames(cmd.Context(), f)
			if err != nil {
				return err
			}
			feed := calendar.Feed{
				SeasonID:  f.seasonID,
				League:    l.Name,
				Ranges:    weeks.Sorted(weeks.New(l).Ranges(gs)),
				Formatter: a.formatter(f, l),
				Stamp:     time.Now(),
			}
			if output == "" || output == "-" {
				return calendar.Write(cmd.OutOrStdout(), feed)
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := calendar.Write(file, feed); err != nil {
				_ = file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("wrote %d weeks to %s", len(feed.Ranges), output)))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
