package services

import (
	"time"

	"github.com/google/uuid"
)

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WholeMonthsBetween counts the whole calendar months from start to end.
// A partial trailing month counts as a full one, so a 2024-01-01..2024-07-01
// lease is 6 months and 2024-01-15..2024-07-01 is still 6.
func WholeMonthsBetween(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	switch {
	case end.Day() > start.Day():
		months++
	case end.Day() == start.Day() && months == 0:
		months = 1
	}
	return months
}

// Actor identifies who performed an operation, for audit history entries.
// It arrives from the caller (request auth or the system scheduler).
type Actor struct {
	ID   uuid.UUID
	Role string
}

// SystemActor is the identity used by scheduled jobs.
func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: "SYSTEM"}
}
