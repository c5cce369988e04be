package application

import "context"

// Service defines the interface for the application workflow: questionnaire
// sessions and reviewer decisions
type Service interface {
	// StartApplication begins a questionnaire session for an applicant and
	// DMs them the first question
	StartApplication(ctx context.Context, input *StartApplicationInput) (*StartApplicationOutput, error)

	// HandleReply feeds an inbound message into the owner's session. Replies
	// outside the session's reply channel are ignored; the final reply
	// completes the questionnaire and produces a pending review.
	HandleReply(ctx context.Context, input *HandleReplyInput) (*HandleReplyOutput, error)

	// CancelApplication aborts the owner's in-flight session, discarding
	// partial answers
	CancelApplication(ctx context.Context, input *CancelApplicationInput) (*CancelApplicationOutput, error)

	// Accept decides a pending review in the applicant's favor and grants
	// the division's roles
	Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error)

	// Deny decides a pending review against the applicant
	Deny(ctx context.Context, input *DenyInput) (*DenyOutput, error)
}
