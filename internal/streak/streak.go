package streak

import "time"

// DateFormat is the calendar-day key used for all streak and reset
// comparisons. Day boundaries are whole-date string comparisons, never
// timestamp arithmetic.
const DateFormat = "2006-01-02"

// DateString returns t's calendar day in DateFormat.
func DateString(t time.Time) string {
	return t.Format(DateFormat)
}

// Today returns the current calendar day in loc, falling back to the
// local zone when loc is nil.
func Today(loc *time.Location) string {
	now := time.Now()
	if loc != nil {
		now = now.In(loc)
	}
	return DateString(now)
}

// Yesterday returns the calendar day before day, or "" when day does not
// parse.
func Yesterday(day string) string {
	t, err := time.Parse(DateFormat, day)
	if err != nil {
		return ""
	}
	return DateString(t.AddDate(0, 0, -1))
}

// Advance applies a completion on day today to a streak whose last credited
// day was lastCompleted. It returns the new streak value and whether the
// streak changed. Completions on an already-credited day are idempotent:
// only the first completion of a day moves the counter.
func Advance(current int, lastCompleted, today string) (int, bool) {
	switch lastCompleted {
	case today:
		return current, false
	case Yesterday(today):
		return current + 1, true
	default:
		return 1, true
	}
}

// ShouldBreak reports whether a streak with the given last credited day is
// stale on day today. A streak is stale when the gap is two days or more;
// today and yesterday both keep it alive.
func ShouldBreak(lastCompleted, today string) bool {
	if lastCompleted == "" {
		return false
	}
	return lastCompleted != today && lastCompleted != Yesterday(today)
}
