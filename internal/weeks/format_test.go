package weeks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatterLocales(t *testing.T) {
	start := time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.September, 11, 23, 59, 59, 0, time.UTC)

	cases := []struct {
		locale string
		want   string
	}{
		{"en-US", "Sep 5 - Sep 11"},
		{"en-GB", "5 Sep - 11 Sep"},
		{"fr-FR", "5 sept. - 11 sept."},
		{"de-DE", "5. Sept. - 11. Sept."},
		{"es", "5 sept - 11 sept"},
		{"pt-BR", "5 set. - 11 set."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewFormatter(tc.locale).Format(start, end), tc.locale)
	}
}

func TestFormatterCrossesMonths(t *testing.T) {
	start := time.Date(2025, time.August, 26, 0, 0, 0, 0, time.UTC)
	r := WeekRange{Week: 1, StartDate: start, EndDate: EndOfWeek(start)}

	assert.Equal(t, "Aug 26 - Sep 1", NewFormatter("en-US").FormatRange(r))
}

func TestFormatterDefaultsToAmericanEnglish(t *testing.T) {
	assert.Equal(t, DefaultLocale, NewFormatter().Locale())
	assert.Equal(t, DefaultLocale, NewFormatter("ja-JP").Locale())
}

func TestFormatterAcceptsAcceptLanguageHeader(t *testing.T) {
	f := NewFormatter("de-CH, de;q=0.9, en;q=0.5")
	start := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "3. März - 9. März", f.Format(start, start.AddDate(0, 0, 6)))
}

func TestSupportedLocales(t *testing.T) {
	got := SupportedLocales()
	assert.Contains(t, got, "en-US")
	assert.Contains(t, got, "fr")
}
