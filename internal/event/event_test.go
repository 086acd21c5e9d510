package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2030-01-01", wantErr: false},
		{name: "leap day", input: "2024-02-29", wantErr: false},
		{name: "month out of range", input: "2024-13-40", wantErr: true},
		{name: "day out of range", input: "2024-02-30", wantErr: true},
		{name: "wrong separator", input: "2024/01/01", wantErr: true},
		{name: "missing day", input: "2024-01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got.Location() != JST {
				t.Errorf("ParseDate(%q) location = %v, want JST", tt.input, got.Location())
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseDate(%q) = %v, want midnight", tt.input, got)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	// 23:30 UTC on Jan 1 is already 08:30 Jan 2 in JST.
	now := time.Date(2030, 1, 1, 23, 30, 0, 0, time.UTC)
	got := DateOf(now)

	want := time.Date(2030, 1, 2, 0, 0, 0, 0, JST)
	if !got.Equal(want) {
		t.Errorf("DateOf(%v) = %v, want %v", now, got, want)
	}
}

func TestDaysUntil(t *testing.T) {
	today := mustDate(t, "2029-12-30")

	tests := []struct {
		date string
		want int
	}{
		{date: "2030-01-01", want: 2},
		{date: "2029-12-31", want: 1},
		{date: "2029-12-30", want: 0},
		{date: "2029-12-29", want: -1},
		{date: "2000-01-01", want: -10956},
	}

	for _, tt := range tests {
		date := mustDate(t, tt.date)
		if got := DaysUntil(date, today); got != tt.want {
			t.Errorf("DaysUntil(%s, 2029-12-30) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func mustDate(t *testing.T, text string) time.Time {
	t.Helper()
	date, err := ParseDate(text)
	if err != nil {
		t.Fatalf("ParseDate(%q) error = %v", text, err)
	}
	return date
}
