package models

import (
	"testing"
	"time"
)

func d(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestReservationOverlaps(t *testing.T) {
	res := &Reservation{StartDate: d(2024, 1, 1), EndDate: d(2024, 6, 30)}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", d(2024, 3, 1), d(2024, 4, 1), true},
		{"straddles end", d(2024, 6, 15), d(2024, 12, 15), true},
		{"touches end date", d(2024, 6, 30), d(2024, 12, 1), true},
		{"touches start date", d(2023, 10, 1), d(2024, 1, 1), true},
		{"covers whole range", d(2023, 1, 1), d(2025, 1, 1), true},
		{"after", d(2024, 7, 1), d(2024, 12, 1), false},
		{"before", d(2023, 1, 1), d(2023, 12, 31), false},
	}
	for _, tc := range cases {
		if got := res.Overlaps(tc.start, tc.end); got != tc.want {
			t.Errorf("%s: Overlaps(%v, %v) = %v, want %v", tc.name, tc.start, tc.end, got, tc.want)
		}
	}
}

func TestIntervalMonths(t *testing.T) {
	cases := map[PaymentFrequencyType]int{
		FrequencyMonthly:              1,
		FrequencyQuarterly:            3,
		FrequencyTriannual:            4,
		FrequencyBiannual:             6,
		FrequencyAnnual:               12,
		PaymentFrequencyType("DAILY"): 0,
	}
	for freq, want := range cases {
		if got := freq.IntervalMonths(); got != want {
			t.Errorf("IntervalMonths(%s) = %d, want %d", freq, got, want)
		}
	}
}
