package valueobject

import (
	"errors"
	"testing"
	"time"
)

func TestDateWindowContains(t *testing.T) {
	window, err := NewDateWindow(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start day", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"start day late evening", time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC), true},
		{"end day", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), true},
		{"end day late evening", time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC), true},
		{"day before start", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"day after end", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), false},
		{"middle", time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDateWindowUsesLocalCalendarDay(t *testing.T) {
	window, _ := NewDateWindow(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	)
	loc := time.FixedZone("UTC-5", -5*60*60)

	// 22:00 on the 10th in UTC-5 is already the 11th in UTC; the local day wins.
	if !window.Contains(time.Date(2025, 3, 10, 22, 0, 0, 0, loc)) {
		t.Error("expected local calendar day to be inside the window")
	}
}

func TestNewDateWindowRejectsInvertedRange(t *testing.T) {
	_, err := NewDateWindow(
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	if !errors.Is(err, ErrInvalidDateWindow) {
		t.Fatalf("expected ErrInvalidDateWindow, got %v", err)
	}
}

func TestDateWindowDays(t *testing.T) {
	window, _ := NewDateWindow(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	if got := window.Days(); got != 31 {
		t.Errorf("Days() = %d, want 31", got)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	day, err := ParseDate("2025-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(day); got != "2025-01-15" {
		t.Errorf("FormatDate = %s, want 2025-01-15", got)
	}
	if _, err := ParseDate("15/01/2025"); err == nil {
		t.Error("expected error for non ISO date")
	}
}
