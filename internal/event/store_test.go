package event

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "events.toml"), zap.NewNop())
}

func TestStore_ReadMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ReadMalformed(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("[[events]\nnot toml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := s.Read()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Read() error = %v, want ErrMalformed", err)
	}
}

func TestStore_ReadSortsByDate(t *testing.T) {
	s := newTestStore(t)
	content := `[[events]]
title = "Later"
date = "2030-06-01"

[[events]]
title = "Sooner"
date = "2030-01-01"
`
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	events, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Read() returned %d events, want 2", len(events))
	}
	if events[0].Title != "Sooner" || events[1].Title != "Later" {
		t.Errorf("Read() order = [%s, %s], want [Sooner, Later]", events[0].Title, events[1].Title)
	}
}

func TestStore_ReadSkipsUnparsableDates(t *testing.T) {
	s := newTestStore(t)
	content := `[[events]]
title = "Good"
date = "2030-01-01"

[[events]]
title = "Bad"
date = "2030-13-40"
`
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	events, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v, want nil (bad entries are skipped, not fatal)", err)
	}

	if len(events) != 1 {
		t.Fatalf("Read() returned %d events, want 1", len(events))
	}
	if events[0].Title != "Good" {
		t.Errorf("Read() kept %q, want %q", events[0].Title, "Good")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	events := []Event{
		{Title: "Launch", Date: mustDate(t, "2030-01-01")},
		{Title: "Review", Date: mustDate(t, "2029-06-15")},
		{Title: "Same day", Date: mustDate(t, "2029-06-15")},
	}
	if err := s.Write(events); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("Read() returned %d events, want 3", len(got))
	}

	// Sorted ascending by date; equal dates keep insertion order.
	wantTitles := []string{"Review", "Same day", "Launch"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("events[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestStore_WriteEmptyList(t *testing.T) {
	s := newTestStore(t)

	if err := s.Write(nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	events, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Read() returned %d events, want 0", len(events))
	}
}

func TestStore_AddInvalidDate(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write([]Event{{Title: "Existing", Date: mustDate(t, "2030-01-01")}}); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Add("Broken", "2024-13-40")
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Add() error = %v, want ErrInvalidDate", err)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("Add() with invalid date modified the store")
	}
}

func TestStore_AddMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("First", "2030-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Add() error = %v, want ErrNotFound", err)
	}
}

func TestStore_AddInsertsSorted(t *testing.T) {
	s := newTestStore(t)
	if err := s.Write([]Event{
		{Title: "A", Date: mustDate(t, "2030-01-01")},
		{Title: "C", Date: mustDate(t, "2030-03-01")},
	}); err != nil {
		t.Fatal(err)
	}

	events, err := s.Add("B", "2030-02-01")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	wantTitles := []string{"A", "B", "C"}
	if len(events) != len(wantTitles) {
		t.Fatalf("Add() returned %d events, want %d", len(events), len(wantTitles))
	}
	for i, want := range wantTitles {
		if events[i].Title != want {
			t.Errorf("events[%d].Title = %q, want %q", i, events[i].Title, want)
		}
	}

	// The new list must also be what a fresh read sees.
	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 3 || got[1].Title != "B" {
		t.Errorf("Read() after Add() = %v, want B in the middle", got)
	}
}

func TestInsert_StableOnEqualDates(t *testing.T) {
	date := mustDate(t, "2030-01-01")
	events := []Event{
		{Title: "First", Date: date},
		{Title: "Second", Date: date},
	}

	events = Insert(events, Event{Title: "Third", Date: date})

	wantTitles := []string{"First", "Second", "Third"}
	for i, want := range wantTitles {
		if events[i].Title != want {
			t.Errorf("events[%d].Title = %q, want %q", i, events[i].Title, want)
		}
	}
}
