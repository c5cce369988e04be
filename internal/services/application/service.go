package application

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
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/messaging"
)

// service implements the Service interface
type service struct {
	divisions     map[string]*models.Division
	answerTimeout time.Duration
	messenger     messaging.Service
	auditor       audit.Service
	clock         clock.Clock
	uuidGen       uuid.UUID
	logger        *zap.Logger

	sessions *sessionStore

	reviewsMu sync.Mutex
	reviews   map[string]*models.ApplicationReview
}

// New creates a new application service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if len(cfg.Divisions) == 0 {
		return nil, ErrNoDivisions
	}
	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
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

	timeout := cfg.AnswerTimeout
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		divisions:     cfg.Divisions,
		answerTimeout: timeout,
		messenger:     cfg.Messenger,
		auditor:       cfg.Auditor,
		clock:         cfg.Clock,
		uuidGen:       cfg.UUIDGenerator,
		logger:        logger,
		sessions:      newSessionStore(),
		reviews:       make(map[string]*models.ApplicationReview),
	}, nil
}

// StartApplication begins a questionnaire session for an applicant
func (s *service) StartApplication(ctx context.Context, input *StartApplicationInput) (*StartApplicationOutput, error) {
	if input == nil || input.ApplicantID == "" {
		return nil, errors.New("input and applicant ID cannot be empty")
	}

	div, ok := s.divisions[input.DivisionKey]
	if !ok {
		return nil, ErrUnknownDivision
	}

	if !div.Eligible(input.MemberRoleIDs) {
		return nil, ErrIneligible
	}

	sess := &session{
		Session: models.Session{
			OwnerID:     input.ApplicantID,
			OwnerName:   input.ApplicantName,
			DivisionKey: div.Key,
			Answers:     make([]string, 0, len(div.Questions)),
			StartedAt:   s.clock.Now(),
		},
	}

	if err := s.sessions.create(sess); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	dm, err := s.messenger.SendDirectMessage(ctx, &messaging.SendDirectMessageInput{
		UserID:  input.ApplicantID,
		Content: questionPrompt(div, 0),
	})
	if err != nil {
		// Without a DM channel there is nowhere for replies to arrive
		sess.removed = true
		s.sessions.remove(input.ApplicantID)
		s.logger.Warn("failed to open application DM",
			zap.String("applicant_id", input.ApplicantID),
			zap.String("division", div.Key),
			zap.Error(err))
		return nil, ErrDMUnavailable
	}

	sess.ReplyChannelID = dm.ChannelID
	s.armDeadline(sess)

	return &StartApplicationOutput{
		DivisionName:   div.DisplayName,
		Question:       div.Questions[0],
		TotalQuestions: len(div.Questions),
		ReplyChannelID: dm.ChannelID,
	}, nil
}

// HandleReply feeds an inbound message into the author's session
func (s *service) HandleReply(ctx context.Context, input *HandleReplyInput) (*HandleReplyOutput, error) {
	if input == nil || input.AuthorID == "" {
		return nil, errors.New("input and author ID cannot be empty")
	}

	sess := s.sessions.get(input.AuthorID)
	if sess == nil {
		return nil, ErrNoSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The session may have expired or completed while this reply waited
	// its turn behind the owner's previous one
	if sess.removed {
		return nil, ErrNoSession
	}

	if input.ChannelID != sess.ReplyChannelID {
		return &HandleReplyOutput{Ignored: true}, nil
	}

	div := s.divisions[sess.DivisionKey]

	// A stopped timer can still have fired; the generation bump makes the
	// stale expiry a no-op
	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.generation++

	sess.Answers = append(sess.Answers, input.Content)
	sess.Cursor++

	if sess.Cursor < len(div.Questions) {
		_, err := s.messenger.SendDirectMessage(ctx, &messaging.SendDirectMessageInput{
			UserID:  sess.OwnerID,
			Content: questionPrompt(div, sess.Cursor),
		})
		if err != nil {
			// The applicant is unreachable, so the session cannot continue
			sess.removed = true
			s.sessions.remove(sess.OwnerID)
			s.logger.Warn("abandoning application, cannot deliver next question",
				zap.String("applicant_id", sess.OwnerID),
				zap.String("division", div.Key),
				zap.Error(err))
			return nil, ErrDMUnavailable
		}

		s.armDeadline(sess)

		return &HandleReplyOutput{
			NextQuestion:   div.Questions[sess.Cursor],
			QuestionNumber: sess.Cursor + 1,
			TotalQuestions: len(div.Questions),
		}, nil
	}

	// Final answer received
	sess.removed = true
	s.sessions.remove(sess.OwnerID)

	record := &models.ApplicationRecord{
		ApplicantID:   sess.OwnerID,
		ApplicantName: sess.OwnerName,
		DivisionKey:   div.Key,
		Answers:       make([]models.QAPair, 0, len(div.Questions)),
		SubmittedAt:   s.clock.Now(),
	}
	for i, q := range div.Questions {
		record.Answers = append(record.Answers, models.QAPair{
			Question: q,
			Answer:   sess.Answers[i],
		})
	}

	review := &models.ApplicationReview{
		ID:     s.uuidGen.NewUUID(),
		Record: record,
		Status: models.ReviewStatusPending,
	}

	s.reviewsMu.Lock()
	s.reviews[review.ID] = review
	s.reviewsMu.Unlock()

	if _, err := s.messenger.SendDirectMessage(ctx, &messaging.SendDirectMessageInput{
		UserID:  sess.OwnerID,
		Content: fmt.Sprintf("Your %s application has been submitted for review.", div.DisplayName),
	}); err != nil {
		s.logger.Warn("failed to confirm submission",
			zap.String("applicant_id", sess.OwnerID),
			zap.Error(err))
	}

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryApplication,
		Title:       "Application submitted",
		Description: fmt.Sprintf("<@%s> applied to %s", sess.OwnerID, div.DisplayName),
		ActorID:     sess.OwnerID,
		Fields: []audit.Field{
			{Name: "Division", Value: div.DisplayName},
			{Name: "Review ID", Value: review.ID},
		},
	})

	return &HandleReplyOutput{
		Completed:      true,
		TotalQuestions: len(div.Questions),
		Review:         review,
		Division:       div,
	}, nil
}

// CancelApplication aborts the owner's in-flight session
func (s *service) CancelApplication(ctx context.Context, input *CancelApplicationInput) (*CancelApplicationOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	sess := s.sessions.get(input.OwnerID)
	if sess == nil {
		return nil, ErrNoSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.removed {
		return nil, ErrNoSession
	}

	if sess.timer != nil {
		sess.timer.Stop()
	}
	sess.generation++
	sess.removed = true
	s.sessions.remove(input.OwnerID)

	return &CancelApplicationOutput{
		DivisionKey: sess.DivisionKey,
	}, nil
}

// Accept decides a pending review in the applicant's favor
func (s *service) Accept(ctx context.Context, input *AcceptInput) (*AcceptOutput, error) {
	if input == nil || input.ReviewID == "" || input.ReviewerID == "" {
		return nil, errors.New("input, review ID and reviewer ID cannot be empty")
	}

	review, err := s.decide(input.ReviewID, input.ReviewerID, models.ReviewStatusAccepted, "")
	if err != nil {
		return nil, err
	}

	div := s.divisions[review.Record.DivisionKey]

	// Each grant stands on its own; a failed role is reported, not rolled back
	var granted, failed []string
	for _, roleID := range div.GrantRoleIDs {
		_, err := s.messenger.GrantRole(ctx, &messaging.GrantRoleInput{
			UserID: review.Record.ApplicantID,
			RoleID: roleID,
		})
		if err != nil {
			failed = append(failed, roleID)
			s.logger.Warn("failed to grant role on acceptance",
				zap.String("applicant_id", review.Record.ApplicantID),
				zap.String("role_id", roleID),
				zap.Error(err))
			continue
		}
		granted = append(granted, roleID)
	}

	s.notifyDecision(ctx, review, div)

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryApplication,
		Title:       "Application accepted",
		Description: fmt.Sprintf("<@%s>'s application to %s was accepted by <@%s>", review.Record.ApplicantID, div.DisplayName, input.ReviewerID),
		ActorID:     input.ReviewerID,
		Fields: []audit.Field{
			{Name: "Division", Value: div.DisplayName},
			{Name: "Roles granted", Value: fmt.Sprintf("%d of %d", len(granted), len(div.GrantRoleIDs))},
		},
	})

	return &AcceptOutput{
		Review:         review,
		Division:       div,
		GrantedRoleIDs: granted,
		FailedRoleIDs:  failed,
	}, nil
}

// Deny decides a pending review against the applicant
func (s *service) Deny(ctx context.Context, input *DenyInput) (*DenyOutput, error) {
	if input == nil || input.ReviewID == "" || input.ReviewerID == "" {
		return nil, errors.New("input, review ID and reviewer ID cannot be empty")
	}

	review, err := s.decide(input.ReviewID, input.ReviewerID, models.ReviewStatusDenied, input.Reason)
	if err != nil {
		return nil, err
	}

	div := s.divisions[review.Record.DivisionKey]

	s.notifyDecision(ctx, review, div)

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryApplication,
		Title:       "Application denied",
		Description: fmt.Sprintf("<@%s>'s application to %s was denied by <@%s>", review.Record.ApplicantID, div.DisplayName, input.ReviewerID),
		ActorID:     input.ReviewerID,
		Fields: []audit.Field{
			{Name: "Division", Value: div.DisplayName},
		},
	})

	return &DenyOutput{
		Review:   review,
		Division: div,
	}, nil
}

// decide performs the pending -> decided transition. The transition happens
// exactly once, under the reviews lock, before any side effect runs.
func (s *service) decide(reviewID, reviewerID string, status models.ReviewStatus, reason string) (*models.ApplicationReview, error) {
	s.reviewsMu.Lock()
	defer s.reviewsMu.Unlock()

	review, ok := s.reviews[reviewID]
	if !ok {
		return nil, ErrReviewNotFound
	}
	if review.Status != models.ReviewStatusPending {
		return nil, ErrAlreadyDecided
	}
	if review.Record.ApplicantID == reviewerID {
		return nil, ErrSelfReview
	}

	review.Status = status
	review.ReviewerID = reviewerID
	review.Reason = reason
	review.DecidedAt = s.clock.Now()

	return review, nil
}

// notifyDecision DMs the applicant the outcome. Best effort; a closed DM
// never reverts the decision.
func (s *service) notifyDecision(ctx context.Context, review *models.ApplicationReview, div *models.Division) {
	var content string
	switch review.Status {
	case models.ReviewStatusAccepted:
		content = fmt.Sprintf("Your application to %s has been accepted. Welcome aboard!", div.DisplayName)
	case models.ReviewStatusDenied:
		content = fmt.Sprintf("Your application to %s has been denied.", div.DisplayName)
		if review.Reason != "" {
			content = fmt.Sprintf("%s Reason: %s", content, review.Reason)
		}
	default:
		return
	}

	if _, err := s.messenger.SendDirectMessage(ctx, &messaging.SendDirectMessageInput{
		UserID:  review.Record.ApplicantID,
		Content: content,
	}); err != nil {
		s.logger.Warn("failed to DM decision to applicant",
			zap.String("applicant_id", review.Record.ApplicantID),
			zap.Error(err))
	}
}

// armDeadline starts the per-question timer. Caller must hold sess.mu.
func (s *service) armDeadline(sess *session) {
	ownerID := sess.OwnerID
	gen := sess.generation
	sess.timer = time.AfterFunc(s.answerTimeout, func() {
		s.expireSession(context.Background(), ownerID, gen)
	})
}

// expireSession destroys a session whose question deadline passed. The
// generation check makes expiry a no-op when the session advanced, completed
// or was cancelled after this deadline was armed.
func (s *service) expireSession(ctx context.Context, ownerID string, gen int) {
	sess := s.sessions.get(ownerID)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	if sess.removed || sess.generation != gen {
		sess.mu.Unlock()
		return
	}

	sess.removed = true
	s.sessions.remove(ownerID)
	divKey := sess.DivisionKey
	sess.mu.Unlock()

	div := s.divisions[divKey]

	if _, err := s.messenger.SendDirectMessage(ctx, &messaging.SendDirectMessageInput{
		UserID:  ownerID,
		Content: fmt.Sprintf("Your %s application timed out. You can start over whenever you're ready.", div.DisplayName),
	}); err != nil {
		s.logger.Warn("failed to DM timeout notice",
			zap.String("applicant_id", ownerID),
			zap.Error(err))
	}

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryApplication,
		Title:       "Application timed out",
		Description: fmt.Sprintf("<@%s>'s application to %s timed out awaiting an answer", ownerID, div.DisplayName),
		ActorID:     ownerID,
		Fields: []audit.Field{
			{Name: "Division", Value: div.DisplayName},
		},
	})
}

func questionPrompt(div *models.Division, index int) string {
	return fmt.Sprintf("**Question %d of %d:** %s", index+1, len(div.Questions), div.Questions[index])
}
