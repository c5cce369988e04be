package shift

import (
	"time"

	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/repositories/shiftlog"
	"github.com/staffhq/warden/internal/services/audit"
)

// Config holds configuration for the shift service
type Config struct {
	// Service dependencies
	History       shiftlog.Repository
	Auditor       audit.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger
}

// StartInput contains parameters for starting a shift
type StartInput struct {
	// OwnerID is the worker whose shift this is
	OwnerID string

	// ActorID is the principal invoking the transition
	ActorID string
}

// StartOutput contains the result of starting a shift
type StartOutput struct {
	// StartedAt is when the shift began
	StartedAt time.Time
}

// BreakInput contains parameters for pausing a shift
type BreakInput struct {
	OwnerID string
	ActorID string
}

// BreakOutput contains the result of pausing a shift
type BreakOutput struct {
	// BreakStartedAt is when the break began
	BreakStartedAt time.Time
}

// ResumeInput contains parameters for resuming a paused shift
type ResumeInput struct {
	OwnerID string
	ActorID string
}

// ResumeOutput contains the result of resuming a shift
type ResumeOutput struct {
	// BreakDuration is how long the just-ended break lasted
	BreakDuration time.Duration
}

// EndInput contains parameters for ending a shift
type EndInput struct {
	OwnerID string
	ActorID string
}

// EndOutput contains the result of ending a shift
type EndOutput struct {
	// StartedAt is when the shift began
	StartedAt time.Time

	// EndedAt is when the shift ended
	EndedAt time.Time

	// WorkedDuration is the shift length excluding breaks. An open break
	// is counted as ending at EndedAt.
	WorkedDuration time.Duration

	// BreakDuration is the total paused time
	BreakDuration time.Duration

	// BreakCount is how many breaks were taken
	BreakCount int
}

// HistoryInput contains parameters for listing recent completed shifts
type HistoryInput struct {
	OwnerID string
	ActorID string

	// Limit caps how many summaries are returned. Zero means the
	// repository default.
	Limit int
}

// HistoryOutput contains an owner's recent completed shifts
type HistoryOutput struct {
	// Summaries are the completed shifts, newest first
	Summaries []*models.ShiftSummary
}

// StatusInput contains parameters for querying a shift
type StatusInput struct {
	OwnerID string
	ActorID string
}

// StatusOutput contains the current shift state
type StatusOutput struct {
	// StartedAt is when the shift began
	StartedAt time.Time

	// OnBreak indicates the owner is currently paused
	OnBreak bool

	// WorkedSoFar is the time worked up to now, excluding breaks
	WorkedSoFar time.Duration

	// BreakSoFar is the total paused time up to now
	BreakSoFar time.Duration
}
