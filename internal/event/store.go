package event

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

var (
	// ErrNotFound means the events file does not exist yet. Callers
	// should tell the user how to create it rather than treat this as
	// corruption.
	ErrNotFound = errors.New("events file not found")

	// ErrMalformed means the events file exists but is not valid TOML.
	ErrMalformed = errors.New("events file is malformed")

	// ErrInvalidDate means a user-supplied date was not a valid
	// ISO 8601 calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrWrite means the events file could not be created or replaced.
	// The operation did not persist.
	ErrWrite = errors.New("cannot write events file")
)

// fileEvent is the on-disk shape of one entry. Dates are stored as
// strings and validated on read so one bad entry cannot poison the file.
type fileEvent struct {
	Title string `toml:"title"`
	Date  string `toml:"date"`
}

// eventsFile is the on-disk document: a list of [[events]] tables.
type eventsFile struct {
	Events []fileEvent `toml:"events"`
}

// Store owns the events TOML file. Reads are safe concurrently with a
// write because Write replaces the file atomically; the read-modify-write
// in Add is serialized by mu so concurrent adds cannot lose an entry.
type Store struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

// NewStore creates a store backed by the TOML file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path: path,
		log:  logger.Named("store"),
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Read loads all events, sorted ascending by date. Entries whose date
// does not parse are dropped with a log line; an empty result is valid.
func (s *Store) Read() ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc eventsFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	events := make([]Event, 0, len(doc.Events))
	for _, entry := range doc.Events {
		date, err := ParseDate(entry.Date)
		if err != nil {
			s.log.Warn("skipping event with unparsable date",
				zap.String("title", entry.Title),
				zap.String("date", entry.Date))
			continue
		}
		events = append(events, Event{Title: entry.Title, Date: date})
	}

	sortByDate(events)
	return events, nil
}

// Write serializes the full list and replaces the file atomically, so a
// concurrent Read sees either the old list or the new one, never a
// partial write.
func (s *Store) Write(events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(events); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func (s *Store) write(events []Event) error {
	doc := eventsFile{Events: make([]fileEvent, 0, len(events))}
	for _, e := range events {
		doc.Events = append(doc.Events, fileEvent{
			Title: e.Title,
			Date:  e.Date.Format(DateLayout),
		})
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".events-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Add parses dateText, appends a new event, and persists the re-sorted
// list. The date is validated before the file is touched, so an invalid
// date leaves the store unchanged. The whole read-modify-write runs
// under the store lock.
func (s *Store) Add(title, dateText string) ([]Event, error) {
	date, err := ParseDate(dateText)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an ISO 8601 date (YYYY-MM-DD)", ErrInvalidDate, dateText)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.Read()
	if err != nil {
		return nil, err
	}

	events = Insert(events, Event{Title: title, Date: date})
	if err := s.write(events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	s.log.Info("event added",
		zap.String("title", title),
		zap.String("date", dateText),
		zap.Int("total", len(events)))
	return events, nil
}

// Insert appends e and re-sorts by date. The sort is stable, so events
// sharing a date keep their insertion order.
func Insert(events []Event, e Event) []Event {
	events = append(events, e)
	sortByDate(events)
	return events
}

func sortByDate(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
