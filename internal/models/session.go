package models

import (
	"time"
)

// Session is a single user's in-progress questionnaire. At most one Session
// exists per owner at a time; it is destroyed on completion, timeout or abort.
type Session struct {
	// OwnerID is the applicant driving this session
	OwnerID string

	// OwnerName is the applicant's display name when the session started
	OwnerName string

	// DivisionKey identifies the division being applied to
	DivisionKey string

	// ReplyChannelID is the designated private channel qualifying replies
	// must arrive in
	ReplyChannelID string

	// Answers collects replies in question order
	Answers []string

	// Cursor indexes the question currently awaiting an answer
	Cursor int

	// StartedAt is when the session was created
	StartedAt time.Time
}
