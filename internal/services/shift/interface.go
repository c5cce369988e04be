package shift

import "context"

// Service defines the interface for shift tracking. Every transition names
// both the shift owner and the acting principal; only the owner may drive
// their own shift.
type Service interface {
	// Start opens a shift for the owner
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Break pauses a running shift
	Break(ctx context.Context, input *BreakInput) (*BreakOutput, error)

	// Resume continues a paused shift
	Resume(ctx context.Context, input *ResumeInput) (*ResumeOutput, error)

	// End closes the shift and reports the worked duration, excluding breaks
	End(ctx context.Context, input *EndInput) (*EndOutput, error)

	// Status reports the current shift without mutating it
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)

	// History returns the owner's recent completed shifts, newest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)
}
