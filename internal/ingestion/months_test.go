package ingestion

import (
	"testing"
	"time"
)

func TestMonthOf(t *testing.T) {
	got := MonthOf(time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))
	if got != 202608 {
		t.Errorf("expected 202608, got %d", got)
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		yearMonth, n, want int
	}{
		{202501, 1, 202502},
		{202512, 1, 202601}, // year carry forward
		{202501, -1, 202412},
		{202501, 12, 202601},
		{202501, -12, 202401},
		{202506, 0, 202506},
		{202503, -15, 202312}, // multi-year negative shift
		{202411, 14, 202601},
	}

	for _, c := range cases {
		if got := AddMonths(c.yearMonth, c.n); got != c.want {
			t.Errorf("AddMonths(%d, %d) = %d, want %d", c.yearMonth, c.n, got, c.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	got := MonthRange(202411, 202502)
	want := []int{202411, 202412, 202501, 202502}

	if len(got) != len(want) {
		t.Fatalf("expected %d months, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestMonthRange_SingleMonth(t *testing.T) {
	got := MonthRange(202506, 202506)
	if len(got) != 1 || got[0] != 202506 {
		t.Errorf("expected [202506], got %v", got)
	}
}

func TestMonthRange_InvertedRange(t *testing.T) {
	if got := MonthRange(202507, 202506); got != nil {
		t.Errorf("expected nil for inverted range, got %v", got)
	}
}
