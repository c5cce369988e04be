package application

import (
	"time"

	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/messaging"
)

// DefaultAnswerTimeout is how long an applicant has to answer each question
// when the config does not say otherwise
const DefaultAnswerTimeout = 300 * time.Second

// Config holds configuration for the application service
type Config struct {
	// Divisions maps division key to its application track
	Divisions map[string]*models.Division

	// AnswerTimeout is the per-question reply deadline. Zero or negative
	// falls back to DefaultAnswerTimeout.
	AnswerTimeout time.Duration

	// Service dependencies
	Messenger     messaging.Service
	Auditor       audit.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *zap.Logger
}

// StartApplicationInput contains parameters for starting a questionnaire
type StartApplicationInput struct {
	// ApplicantID is the Discord user ID of the applicant
	ApplicantID string

	// ApplicantName is the display name of the applicant
	ApplicantName string

	// MemberRoleIDs are the roles the applicant currently holds, used for
	// the eligibility check
	MemberRoleIDs []string

	// DivisionKey identifies the division being applied to
	DivisionKey string
}

// StartApplicationOutput contains the result of starting a questionnaire
type StartApplicationOutput struct {
	// DivisionName is the display name of the division
	DivisionName string

	// Question is the first prompt, already DMed to the applicant
	Question string

	// TotalQuestions is how many prompts the questionnaire has
	TotalQuestions int

	// ReplyChannelID is the DM channel replies must arrive in
	ReplyChannelID string
}

// HandleReplyInput contains an inbound message for session routing
type HandleReplyInput struct {
	// AuthorID is the message author
	AuthorID string

	// ChannelID is where the message arrived
	ChannelID string

	// Content is the message text
	Content string
}

// HandleReplyOutput contains the result of a session advancement
type HandleReplyOutput struct {
	// Ignored indicates the message was not a qualifying reply and the
	// session did not advance
	Ignored bool

	// Completed indicates the questionnaire finished with this reply
	Completed bool

	// NextQuestion is the following prompt, set when the session advanced
	// without completing
	NextQuestion string

	// QuestionNumber is the 1-based number of NextQuestion
	QuestionNumber int

	// TotalQuestions is how many prompts the questionnaire has
	TotalQuestions int

	// Review is the pending review created on completion
	Review *models.ApplicationReview

	// Division is the division applied to, set on completion so the caller
	// can route the review surface
	Division *models.Division
}

// CancelApplicationInput contains parameters for aborting a session
type CancelApplicationInput struct {
	// OwnerID is the applicant aborting their session
	OwnerID string
}

// CancelApplicationOutput contains the result of aborting a session
type CancelApplicationOutput struct {
	// DivisionKey is the division the aborted session was for
	DivisionKey string
}

// AcceptInput contains parameters for accepting an application
type AcceptInput struct {
	// ReviewID identifies the pending review
	ReviewID string

	// ReviewerID is the principal making the decision
	ReviewerID string
}

// AcceptOutput contains the result of accepting an application
type AcceptOutput struct {
	// Review is the decided review
	Review *models.ApplicationReview

	// Division is the division applied to
	Division *models.Division

	// GrantedRoleIDs are the roles successfully granted
	GrantedRoleIDs []string

	// FailedRoleIDs are the roles that could not be granted. Partial
	// failure does not revert the decision.
	FailedRoleIDs []string
}

// DenyInput contains parameters for denying an application
type DenyInput struct {
	// ReviewID identifies the pending review
	ReviewID string

	// ReviewerID is the principal making the decision
	ReviewerID string

	// Reason is the optional denial reason
	Reason string
}

// DenyOutput contains the result of denying an application
type DenyOutput struct {
	// Review is the decided review
	Review *models.ApplicationReview

	// Division is the division applied to
	Division *models.Division
}
