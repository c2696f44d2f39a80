package weeks

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is used when no candidate locale matches.
const DefaultLocale = "en-US"

type monthDayStyle struct {
	months [12]string
	// dayFirst renders "5 Sep" instead of "Sep 5".
	dayFirst bool
	// daySuffix follows the day number ("5." in German).
	daySuffix string
}

var (
	supportedTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.French,
		language.German,
		language.Spanish,
		language.Portuguese,
	}
	matcher = language.NewMatcher(supportedTags)

	englishMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	styles = map[language.Tag]monthDayStyle{
		language.AmericanEnglish: {months: englishMonths},
		language.BritishEnglish:  {months: englishMonths, dayFirst: true},
		language.French: {
			months:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
			dayFirst: true,
		},
		language.German: {
			months:    [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
			dayFirst:  true,
			daySuffix: ".",
		},
		language.Spanish: {
			months:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
			dayFirst: true,
		},
		language.Portuguese: {
			months:   [12]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
			dayFirst: true,
		},
	}
)

// Formatter renders week ranges as short month/day labels for one locale.
type Formatter struct {
	tag   language.Tag
	style monthDayStyle
}

// NewFormatter picks the best supported locale for the given candidates,
// which may be BCP 47 tags or Accept-Language header values, in priority order.
func NewFormatter(candidates ...string) *Formatter {
	_, idx := language.MatchStrings(matcher, candidates...)
	if idx < 0 || idx >= len(supportedTags) {
		idx = 0
	}
	tag := supportedTags[idx]
	return &Formatter{tag: tag, style: styles[tag]}
}

// Locale returns the matched BCP 47 tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders "Sep 5 - Sep 11" style labels. Inputs are not reordered.
func (f *Formatter) Format(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", f.monthDay(start), f.monthDay(end))
}

// FormatRange renders r.
func (f *Formatter) FormatRange(r WeekRange) string {
	return f.Format(r.StartDate, r.EndDate)
}

func (f *Formatter) monthDay(t time.Time) string {
	month := f.style.months[t.Month()-1]
	day := fmt.Sprintf("%d%s", t.Day(), f.style.daySuffix)
	if f.style.dayFirst {
		return day + " " + month
	}
	return month + " " + day
}

// SupportedLocales lists the locales with month tables.
func SupportedLocales() []string {
	out := make([]string, 0, len(supportedTags))
	for _, tag := range supportedTags {
		out = append(out, tag.String())
	}
	return out
}
