package entity

import (
	"sort"
	"strings"
	"time"
)

const windowLayout = "2006-01-02"

// WindowGrace keeps the matches of a closed window readable, so late polls still see
// the final state.
const WindowGrace = time.Hour

// Window is the eligibility period a pair may play one match per feature in.
type Window struct {
	Key   string
	Start time.Time
	End   time.Time
}

// DailyWindow returns the calendar day containing t in loc.
func DailyWindow(t time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}

	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	return Window{
		Key:   start.Format(windowLayout),
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// PairKey is order independent so both participants resolve the same match.
func PairKey(first, second string) string {
	ids := []string{first, second}
	sort.Strings(ids)

	return strings.Join(ids, "|")
}
