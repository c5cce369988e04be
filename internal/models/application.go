package models

import (
	"time"
)

// QAPair is a single answered prompt from a completed questionnaire
type QAPair struct {
	// Question is the prompt text as it was asked
	Question string

	// Answer is the applicant's reply
	Answer string
}

// ApplicationRecord is the immutable result of a completed questionnaire,
// pending a reviewer decision
type ApplicationRecord struct {
	// ApplicantID is the Discord user ID of the applicant
	ApplicantID string

	// ApplicantName is the display name of the applicant at submission time
	ApplicantName string

	// DivisionKey identifies the division applied to
	DivisionKey string

	// Answers holds the prompt/answer pairs in submission order
	Answers []QAPair

	// SubmittedAt is when the final answer was received
	SubmittedAt time.Time
}

// ReviewStatus represents the decision state of a submitted application
type ReviewStatus string

const (
	// ReviewStatusPending indicates no decision has been made yet
	ReviewStatusPending ReviewStatus = "pending"

	// ReviewStatusAccepted indicates the application was accepted
	ReviewStatusAccepted ReviewStatus = "accepted"

	// ReviewStatusDenied indicates the application was denied
	ReviewStatusDenied ReviewStatus = "denied"
)

// ApplicationReview binds an ApplicationRecord to its decision state.
// Transition pending -> accepted/denied happens exactly once.
type ApplicationReview struct {
	// ID is the unique identifier bound into the decision buttons
	ID string

	// Record is the submitted application under review
	Record *ApplicationRecord

	// Status is the current decision state
	Status ReviewStatus

	// ReviewerID is the user who decided, empty while pending
	ReviewerID string

	// Reason is the optional denial reason
	Reason string

	// DecidedAt is when the decision was made, zero while pending
	DecidedAt time.Time
}
