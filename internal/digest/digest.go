// Package digest builds the notification payload from the event list.
//
// Build is a pure projection of store state: it never fails, and an
// empty event list simply yields a payload with no fields. Callers
// decide whether an empty payload suppresses the outbound message.
package digest

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"remindd/internal/event"
)

const (
	// Title is the embed title of every reminder payload.
	Title = "Events"

	// Color is the embed accent color.
	Color = 0x98c379
)

// Field is one name/body pair in the payload, one per upcoming event.
type Field struct {
	Name string
	Body string
}

// Payload is the assembled summary handed to the dispatcher. It is a
// value built fresh on each call and never mutated afterwards.
type Payload struct {
	Title  string
	Color  int
	Fields []Field
}

// Build assembles the payload for events relative to today (a midnight
// JST value, see event.DateOf). Events dated strictly before today are
// overdue: they are dropped with a diagnostic log line. Field order
// follows input order, which the store keeps date-ascending.
func Build(events []event.Event, today time.Time, logger *zap.Logger) Payload {
	log := logger.Named("digest")

	p := Payload{
		Title:  Title,
		Color:  Color,
		Fields: make([]Field, 0, len(events)),
	}

	for _, e := range events {
		days := event.DaysUntil(e.Date, today)
		if days < 0 {
			log.Info("overdue event excluded",
				zap.String("title", e.Title),
				zap.String("date", e.Date.Format(event.DateLayout)))
			continue
		}
		p.Fields = append(p.Fields, Field{
			Name: e.Title,
			Body: fmt.Sprintf("Date: %s\nDue: %d %s",
				e.Date.Format(event.DateLayout), days, dayWord(days)),
		})
	}

	return p
}

// dayWord picks the unit label. Exactly 1 is singular; everything else,
// including 0, is plural ("0 days" is the intended due-today rendering).
func dayWord(days int) string {
	if days == 1 {
		return "day"
	}
	return "days"
}
