package shift

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/repositories/shiftlog"
	"github.com/staffhq/warden/internal/services/audit"
)

// service implements the Service interface
type service struct {
	history shiftlog.Repository
	auditor audit.Service
	clock   clock.Clock
	uuidGen uuid.UUID
	logger  *zap.Logger

	// mu guards the live shift map; transitions for different owners run
	// in parallel only up to this lock, which they hold briefly
	mu     sync.Mutex
	shifts map[string]*models.Shift
}

// New creates a new shift service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.History == nil {
		return nil, ErrNilHistory
	}
	if cfg.Auditor == nil {
		return nil, ErrNilAuditor
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		history: cfg.History,
		auditor: cfg.Auditor,
		clock:   cfg.Clock,
		uuidGen: cfg.UUIDGenerator,
		logger:  logger,
		shifts:  make(map[string]*models.Shift),
	}, nil
}

// Start opens a shift for the owner
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	if _, exists := s.shifts[input.OwnerID]; exists {
		s.mu.Unlock()
		return nil, ErrInvalidShiftState
	}
	s.shifts[input.OwnerID] = &models.Shift{
		OwnerID:   input.OwnerID,
		StartedAt: now,
	}
	s.mu.Unlock()

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryShift,
		Title:       "Shift started",
		Description: fmt.Sprintf("<@%s> clocked in", input.OwnerID),
		ActorID:     input.OwnerID,
	})

	return &StartOutput{StartedAt: now}, nil
}

// Break pauses a running shift
func (s *service) Break(ctx context.Context, input *BreakInput) (*BreakOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	shift, exists := s.shifts[input.OwnerID]
	if !exists {
		return nil, ErrNoActiveShift
	}
	if shift.OnBreak {
		return nil, ErrInvalidShiftState
	}

	shift.OnBreak = true
	shift.Breaks = append(shift.Breaks, models.BreakInterval{Start: now})

	return &BreakOutput{BreakStartedAt: now}, nil
}

// Resume continues a paused shift
func (s *service) Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	shift, exists := s.shifts[input.OwnerID]
	if !exists {
		return nil, ErrNoActiveShift
	}
	if !shift.OnBreak {
		return nil, ErrInvalidShiftState
	}

	last := &shift.Breaks[len(shift.Breaks)-1]
	last.End = now
	shift.OnBreak = false

	return &ResumeOutput{BreakDuration: now.Sub(last.Start)}, nil
}

// End closes the shift and reports the worked duration. An open break is
// treated as ending now for accounting only; the shift record is destroyed
// either way.
func (s *service) End(ctx context.Context, input *EndInput) (*EndOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	shift, exists := s.shifts[input.OwnerID]
	if !exists {
		s.mu.Unlock()
		return nil, ErrNoActiveShift
	}
	delete(s.shifts, input.OwnerID)
	s.mu.Unlock()

	worked := shift.WorkedDuration(now)
	paused := shift.BreakDuration(now)

	// The live shift is already gone; a history write failure costs the
	// record but never the transition
	if err := s.history.Append(ctx, &shiftlog.AppendInput{
		Summary: &models.ShiftSummary{
			ID:             s.uuidGen.NewUUID(),
			OwnerID:        input.OwnerID,
			StartedAt:      shift.StartedAt,
			EndedAt:        now,
			WorkedDuration: worked,
			BreakDuration:  paused,
			BreakCount:     len(shift.Breaks),
		},
	}); err != nil {
		s.logger.Warn("failed to record shift summary",
			zap.String("owner_id", input.OwnerID),
			zap.Error(err))
	}

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryShift,
		Title:       "Shift ended",
		Description: fmt.Sprintf("<@%s> clocked out", input.OwnerID),
		ActorID:     input.OwnerID,
		Fields: []audit.Field{
			{Name: "Worked", Value: worked.Round(time.Second).String()},
			{Name: "On break", Value: paused.Round(time.Second).String()},
		},
	})

	return &EndOutput{
		StartedAt:      shift.StartedAt,
		EndedAt:        now,
		WorkedDuration: worked,
		BreakDuration:  paused,
		BreakCount:     len(shift.Breaks),
	}, nil
}

// Status reports the current shift without mutating it
func (s *service) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	shift, exists := s.shifts[input.OwnerID]
	if !exists {
		return nil, ErrNoActiveShift
	}

	return &StatusOutput{
		StartedAt:   shift.StartedAt,
		OnBreak:     shift.OnBreak,
		WorkedSoFar: shift.WorkedDuration(now),
		BreakSoFar:  shift.BreakDuration(now),
	}, nil
}

// History returns the owner's recent completed shifts, newest first
func (s *service) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validateActor(input.OwnerID, input.ActorID); err != nil {
		return nil, err
	}

	summaries, err := s.history.ListRecent(ctx, &shiftlog.ListRecentInput{
		OwnerID: input.OwnerID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shift history: %w", err)
	}

	return &HistoryOutput{Summaries: summaries}, nil
}

func validateActor(ownerID, actorID string) error {
	if ownerID == "" {
		return errors.New("owner ID cannot be empty")
	}
	if actorID != "" && actorID != ownerID {
		return ErrNotShiftOwner
	}
	return nil
}
