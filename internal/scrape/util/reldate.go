package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// offsets larger than this are treated as unparseable
const maxOffsetDays = 365 * 1000

var firstIntRe = regexp.MustCompile(`\d+`)

// Checked in order; the first keyword found in the phrase wins. Months and
// years are fixed 30 and 365 day spans.
var relativeUnits = []struct {
	keyword string
	days    int
}{
	{"day", 1},
	{"week", 7},
	{"month", 30},
	{"year", 365},
}

// RelativeDate resolves phrases like "3 days ago" against ref. Phrases with
// no unit keyword or no number resolve to ref's own date.
func RelativeDate(phrase string, ref time.Time) time.Time {
	y, m, d := ref.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())

	for _, u := range relativeUnits {
		if !strings.Contains(phrase, u.keyword) {
			continue
		}
		n, err := strconv.Atoi(firstIntRe.FindString(phrase))
		if err != nil || n > maxOffsetDays/u.days {
			return today
		}
		return today.AddDate(0, 0, -n*u.days)
	}
	return today
}

// NormalizeRelativeDate is RelativeDate formatted as YYYY-MM-DD.
func NormalizeRelativeDate(phrase string, ref time.Time) string {
	return RelativeDate(phrase, ref).Format(DateLayout)
}
