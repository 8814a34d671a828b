package schedule

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"cell_directory/internal/models"
)

// dayNames maps the Portuguese weekday fragments found in schedule prose to
// Go weekdays. Matching is by substring, so "terça" covers "terça-feira".
var dayNames = []struct {
	name string
	day  time.Weekday
}{
	{"domingo", time.Sunday},
	{"segunda", time.Monday},
	{"terça", time.Tuesday},
	{"quarta", time.Wednesday},
	{"quinta", time.Thursday},
	{"sexta", time.Friday},
	{"sábado", time.Saturday},
}

var weekdayLabels = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

var timePattern = regexp.MustCompile(`(\d{2}):(\d{2})`)

// NextOccurrence resolves a free-text weekly schedule ("Toda terça-feira, às
// 20:00") to its next occurrence strictly after now. The text must name one
// of the seven Portuguese weekdays and contain a zero-padded HH:MM; anything
// else is an unparseable schedule and reports ok=false. Schedules written in
// other grammatical day forms or 12-hour clocks are deliberately not guessed.
func NextOccurrence(text string, now time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	lower := strings.ToLower(text)
	target := time.Weekday(-1)
	for _, d := range dayNames {
		if strings.Contains(lower, d.name) {
			target = d.day
			break
		}
	}
	m := timePattern.FindStringSubmatch(text)
	if target < 0 || m == nil {
		return time.Time{}, false
	}

	// The pattern guarantees two digits each.
	hour := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	minute := int(m[2][0]-'0')*10 + int(m[2][1]-'0')

	offset := (int(target) - int(now.Weekday()) + 7) % 7
	next := time.Date(now.Year(), now.Month(), now.Day()+offset, hour, minute, 0, 0, now.Location())
	// A meeting starting at this exact minute counts as already underway.
	if offset == 0 && !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next, true
}

// FormatUpcoming renders an occurrence relative to now: "Hoje, 20:00" on the
// same calendar day, "Amanhã, 20:00" one day later, otherwise the capitalized
// Portuguese weekday name with the 24-hour time.
func FormatUpcoming(t, now time.Time) string {
	clock := fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Rounding keeps a DST-shortened day from counting as zero days.
	days := int(math.Round(target.Sub(today).Hours() / 24))

	switch days {
	case 0:
		return "Hoje, " + clock
	case 1:
		return "Amanhã, " + clock
	}
	return capitalize(weekdayLabels[t.Weekday()]) + ", " + clock
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Occurrence pairs a cell with its resolved next meeting.
type Occurrence struct {
	Cell models.Cell
	At   time.Time
}

// Upcoming returns the soonest meetings among the active cells, ascending by
// occurrence, at most limit entries. Cells whose schedule text cannot be
// resolved are skipped here but remain visible elsewhere as plain text.
func Upcoming(cells []models.Cell, now time.Time, limit int) []Occurrence {
	var out []Occurrence
	for _, c := range cells {
		if c.Status != models.StatusAtiva {
			continue
		}
		at, ok := NextOccurrence(c.Horario, now)
		if !ok {
			continue
		}
		out = append(out, Occurrence{Cell: c, At: at})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
