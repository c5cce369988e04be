package models

import (
	"time"
)

// BreakInterval is one pause within a shift. End is zero while the break is
// still open.
type BreakInterval struct {
	Start time.Time
	End   time.Time
}

// Shift is a tracked work period for a single owner
type Shift struct {
	// OwnerID is the Discord user ID of the worker
	OwnerID string

	// StartedAt is when the shift was started
	StartedAt time.Time

	// OnBreak indicates the owner is currently paused
	OnBreak bool

	// Breaks holds completed and open break intervals in order.
	// At most the last interval may be open.
	Breaks []BreakInterval
}

// WorkedDuration returns the time worked up to now, excluding breaks.
// An open break is treated as ending at now for accounting only.
func (s *Shift) WorkedDuration(now time.Time) time.Duration {
	worked := now.Sub(s.StartedAt)
	for _, b := range s.Breaks {
		end := b.End
		if end.IsZero() {
			end = now
		}
		worked -= end.Sub(b.Start)
	}
	return worked
}

// ShiftSummary is the durable record of a completed shift
type ShiftSummary struct {
	// ID is the unique identifier for the completed shift
	ID string `json:"id"`

	// OwnerID is the Discord user ID of the worker
	OwnerID string `json:"owner_id"`

	// StartedAt is when the shift was started
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when the shift was ended
	EndedAt time.Time `json:"ended_at"`

	// WorkedDuration is the time worked, excluding breaks
	WorkedDuration time.Duration `json:"worked_duration"`

	// BreakDuration is the total paused time
	BreakDuration time.Duration `json:"break_duration"`

	// BreakCount is how many breaks were taken
	BreakCount int `json:"break_count"`
}

// BreakDuration returns the total paused time up to now
func (s *Shift) BreakDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, b := range s.Breaks {
		end := b.End
		if end.IsZero() {
			end = now
		}
		total += end.Sub(b.Start)
	}
	return total
}
