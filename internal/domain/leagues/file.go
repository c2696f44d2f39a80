package leagues

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Leagues map[string]leagueEntry `yaml:"leagues"`
}

type leagueEntry struct {
	WeekStart    string `yaml:"week_start"`
	MaxWeek      *int   `yaml:"max_week"`
	GraceDays    *int   `yaml:"grace_days"`
	FallbackWeek *int   `yaml:"fallback_week"`
	Locale       string `yaml:"locale"`
	Timezone     string `yaml:"timezone"`
}

// LoadFile reads a YAML league file and merges it over Builtins.
func LoadFile(path string) (map[string]League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read leagues file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML league overrides over Builtins. Entries for unknown names
// define new leagues and must be complete.
func Parse(data []byte) (map[string]League, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse leagues file: %w", err)
	}

	out := Builtins()
	for rawName, entry := range cfg.Leagues {
		name := strings.ToLower(strings.TrimSpace(rawName))
		l, ok := out[name]
		if !ok {
			l = League{Name: name}
		}
		if entry.WeekStart != "" {
			day, err := ParseWeekday(entry.WeekStart)
			if err != nil {
				return nil, fmt.Errorf("league %s: %w", name, err)
			}
			l.WeekStart = day
		} else if !ok {
			l.WeekStart = time.Monday
		}
		if entry.MaxWeek != nil {
			l.MaxWeek = *entry.MaxWeek
		}
		if entry.GraceDays != nil {
			l.GraceDays = *entry.GraceDays
		}
		if entry.FallbackWeek != nil {
			l.FallbackWeek = *entry.FallbackWeek
		}
		if entry.Locale != "" {
			l.Locale = entry.Locale
		}
		if entry.Timezone != "" {
			l.Timezone = entry.Timezone
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		out[name] = l
	}
	return out, nil
}
