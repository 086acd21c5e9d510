// Package event provides the reminder event model and its durable store.
//
// An event is a title plus a calendar date. All date comparisons happen
// in a single fixed UTC+9 offset; there is no per-user timezone handling.
package event

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used everywhere an
// event date is parsed or rendered.
const DateLayout = "2006-01-02"

// JST is the fixed UTC+9 offset used for all "today" comparisons.
var JST = time.FixedZone("JST", 9*60*60)

// Event is a single reminder entry. Date always holds midnight JST of
// the due date; construction goes through ParseDate so an Event in
// memory never carries an invalid date.
type Event struct {
	Title string
	Date  time.Time
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD) into midnight
// JST. It rejects out-of-range components such as "2024-13-40".
func ParseDate(text string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, text, JST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", text, err)
	}
	return t, nil
}

// DateOf truncates an instant to its calendar date in JST.
func DateOf(now time.Time) time.Time {
	now = now.In(JST)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, JST)
}

// DaysUntil returns the whole days from today until date. Both arguments
// must be midnight JST values (ParseDate / DateOf output). The result is
// negative for overdue dates.
func DaysUntil(date, today time.Time) int {
	return int(date.Sub(today) / (24 * time.Hour))
}
