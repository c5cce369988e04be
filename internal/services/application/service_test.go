package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/staffhq/warden/internal/common/clock/mocks"
	uuidMocks "github.com/staffhq/warden/internal/common/uuid/mocks"
	"github.com/staffhq/warden/internal/models"
	auditMocks "github.com/staffhq/warden/internal/services/audit/mocks"
	"github.com/staffhq/warden/internal/services/messaging"
	messagingMocks "github.com/staffhq/warden/internal/services/messaging/mocks"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessenger *messagingMocks.MockService
	mockAuditor   *auditMocks.MockService
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	svc           *service
	ctx           context.Context

	// Test data
	testTime        time.Time
	testApplicantID string
	testReviewerID  string
	testDMChannelID string
	testReviewID    string
	divisions       map[string]*models.Division
}

func (s *ApplicationServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessenger = messagingMocks.NewMockService(s.mockCtrl)
	s.mockAuditor = auditMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s.testApplicantID = "applicant-1"
	s.testReviewerID = "reviewer-1"
	s.testDMChannelID = "dm-channel-1"
	s.testReviewID = "review-1"

	s.divisions = map[string]*models.Division{
		"medical": {
			Key:          "medical",
			DisplayName:  "Medical",
			LogChannelID: "log-medical",
			Questions:    []string{"Why medical?", "Prior experience?", "Availability?"},
			GrantRoleIDs: []string{"role-medic", "role-staff"},
		},
		"security": {
			Key:             "security",
			DisplayName:     "Security",
			LogChannelID:    "log-security",
			RequiredRoleIDs: []string{"role-trusted"},
			Questions:       []string{"Why security?"},
		},
	}

	svc, err := New(&Config{
		Divisions:     s.divisions,
		AnswerTimeout: time.Minute,
		Messenger:     s.mockMessenger,
		Auditor:       s.mockAuditor,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ApplicationServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

// expectFirstQuestionDM arranges the DM that StartApplication sends
func (s *ApplicationServiceTestSuite) expectFirstQuestionDM(userID string) {
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), &messaging.SendDirectMessageInput{
			UserID:  userID,
			Content: "**Question 1 of 3:** Why medical?",
		}).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)
}

// startMedical begins a medical application for the test applicant
func (s *ApplicationServiceTestSuite) startMedical() *StartApplicationOutput {
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectFirstQuestionDM(s.testApplicantID)

	out, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID:   s.testApplicantID,
		ApplicantName: "Applicant One",
		DivisionKey:   "medical",
	})
	s.Require().NoError(err)
	return out
}

// completeMedical drives the started questionnaire through all three answers
// and returns the pending review
func (s *ApplicationServiceTestSuite) completeMedical() *models.ApplicationReview {
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), &messaging.SendDirectMessageInput{
			UserID:  s.testApplicantID,
			Content: "**Question 2 of 3:** Prior experience?",
		}).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)

	out, err := s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  s.testApplicantID,
		ChannelID: s.testDMChannelID,
		Content:   "I like helping people",
	})
	s.Require().NoError(err)
	s.False(out.Completed)
	s.Equal("Prior experience?", out.NextQuestion)
	s.Equal(2, out.QuestionNumber)

	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), &messaging.SendDirectMessageInput{
			UserID:  s.testApplicantID,
			Content: "**Question 3 of 3:** Availability?",
		}).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)

	out, err = s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  s.testApplicantID,
		ChannelID: s.testDMChannelID,
		Content:   "Two years as an EMT",
	})
	s.Require().NoError(err)
	s.False(out.Completed)

	// Final answer: record is stamped, review created, submission confirmed
	s.mockClock.EXPECT().Now().Return(s.testTime.Add(10 * time.Minute))
	s.mockUUID.EXPECT().NewUUID().Return(s.testReviewID)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err = s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  s.testApplicantID,
		ChannelID: s.testDMChannelID,
		Content:   "Weekends",
	})
	s.Require().NoError(err)
	s.Require().True(out.Completed)
	s.Require().NotNil(out.Review)
	return out.Review
}

func (s *ApplicationServiceTestSuite) TestStartApplication() {
	out := s.startMedical()

	s.Equal("Medical", out.DivisionName)
	s.Equal("Why medical?", out.Question)
	s.Equal(3, out.TotalQuestions)
	s.Equal(s.testDMChannelID, out.ReplyChannelID)
	s.Equal(1, s.svc.sessions.count())
}

func (s *ApplicationServiceTestSuite) TestStartApplicationUnknownDivision() {
	_, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID: s.testApplicantID,
		DivisionKey: "janitorial",
	})
	s.Require().ErrorIs(err, ErrUnknownDivision)
}

func (s *ApplicationServiceTestSuite) TestStartApplicationIneligible() {
	_, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID:   s.testApplicantID,
		MemberRoleIDs: []string{"role-member"},
		DivisionKey:   "security",
	})
	s.Require().ErrorIs(err, ErrIneligible)
}

func (s *ApplicationServiceTestSuite) TestStartApplicationEligibleWithRequiredRole() {
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)

	out, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID:   s.testApplicantID,
		MemberRoleIDs: []string{"role-member", "role-trusted"},
		DivisionKey:   "security",
	})
	s.Require().NoError(err)
	s.Equal("Security", out.DivisionName)
}

func (s *ApplicationServiceTestSuite) TestStartApplicationRejectsSecondSession() {
	s.startMedical()

	_, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID: s.testApplicantID,
		DivisionKey: "medical",
	})
	s.Require().ErrorIs(err, ErrSessionActive)
	s.Equal(1, s.svc.sessions.count())
}

func (s *ApplicationServiceTestSuite) TestStartApplicationDMFailureTearsDown() {
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("cannot send messages to this user"))

	_, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID: s.testApplicantID,
		DivisionKey: "medical",
	})
	s.Require().ErrorIs(err, ErrDMUnavailable)

	// The slot is free again
	s.Equal(0, s.svc.sessions.count())
	s.startMedical()
}

func (s *ApplicationServiceTestSuite) TestHandleReplyNoSession() {
	_, err := s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  "stranger",
		ChannelID: "somewhere",
		Content:   "hello",
	})
	s.Require().ErrorIs(err, ErrNoSession)
}

func (s *ApplicationServiceTestSuite) TestHandleReplyWrongChannelIgnored() {
	s.startMedical()

	out, err := s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  s.testApplicantID,
		ChannelID: "guild-general",
		Content:   "chatting elsewhere",
	})
	s.Require().NoError(err)
	s.True(out.Ignored)

	// The session did not advance
	sess := s.svc.sessions.get(s.testApplicantID)
	s.Require().NotNil(sess)
	s.Equal(0, sess.Cursor)
}

func (s *ApplicationServiceTestSuite) TestCompletionBuildsOrderedRecord() {
	s.startMedical()
	review := s.completeMedical()

	s.Equal(s.testReviewID, review.ID)
	s.Equal(models.ReviewStatusPending, review.Status)
	s.Equal(s.testApplicantID, review.Record.ApplicantID)
	s.Equal("medical", review.Record.DivisionKey)
	s.True(review.Record.SubmittedAt.Equal(s.testTime.Add(10 * time.Minute)))

	s.Require().Len(review.Record.Answers, 3)
	s.Equal(models.QAPair{Question: "Why medical?", Answer: "I like helping people"}, review.Record.Answers[0])
	s.Equal(models.QAPair{Question: "Prior experience?", Answer: "Two years as an EMT"}, review.Record.Answers[1])
	s.Equal(models.QAPair{Question: "Availability?", Answer: "Weekends"}, review.Record.Answers[2])

	// The session is gone once the questionnaire completes
	s.Equal(0, s.svc.sessions.count())
}

func (s *ApplicationServiceTestSuite) TestSessionsAreIsolatedPerUser() {
	s.startMedical()

	otherID := "applicant-2"
	otherDM := "dm-channel-2"
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), &messaging.SendDirectMessageInput{
			UserID:  otherID,
			Content: "**Question 1 of 3:** Why medical?",
		}).
		Return(&messaging.SendDirectMessageOutput{ChannelID: otherDM}, nil)

	_, err := s.svc.StartApplication(s.ctx, &StartApplicationInput{
		ApplicantID: otherID,
		DivisionKey: "medical",
	})
	s.Require().NoError(err)

	// The second applicant's answer lands in their session only
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{ChannelID: otherDM}, nil)

	_, err = s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  otherID,
		ChannelID: otherDM,
		Content:   "their answer",
	})
	s.Require().NoError(err)

	first := s.svc.sessions.get(s.testApplicantID)
	second := s.svc.sessions.get(otherID)
	s.Equal(0, first.Cursor)
	s.Equal(1, second.Cursor)
	s.Empty(first.Answers)
	s.Equal([]string{"their answer"}, second.Answers)
}

func (s *ApplicationServiceTestSuite) TestCancelApplication() {
	s.startMedical()

	out, err := s.svc.CancelApplication(s.ctx, &CancelApplicationInput{OwnerID: s.testApplicantID})
	s.Require().NoError(err)
	s.Equal("medical", out.DivisionKey)
	s.Equal(0, s.svc.sessions.count())

	// Cancelling again reports no session
	_, err = s.svc.CancelApplication(s.ctx, &CancelApplicationInput{OwnerID: s.testApplicantID})
	s.Require().ErrorIs(err, ErrNoSession)
}

func (s *ApplicationServiceTestSuite) TestExpireSessionDestroysAndAllowsRestart() {
	s.startMedical()
	sess := s.svc.sessions.get(s.testApplicantID)
	s.Require().NotNil(sess)

	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	s.svc.expireSession(s.ctx, s.testApplicantID, sess.generation)
	s.Equal(0, s.svc.sessions.count())

	// Timed out is not locked out
	s.startMedical()
}

func (s *ApplicationServiceTestSuite) TestStaleExpiryIsNoOp() {
	s.startMedical()
	sess := s.svc.sessions.get(s.testApplicantID)
	staleGen := sess.generation

	// The applicant answers before the deadline fires
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{ChannelID: s.testDMChannelID}, nil)
	_, err := s.svc.HandleReply(s.ctx, &HandleReplyInput{
		AuthorID:  s.testApplicantID,
		ChannelID: s.testDMChannelID,
		Content:   "an answer",
	})
	s.Require().NoError(err)

	// The old deadline fires against a bumped generation and does nothing
	s.svc.expireSession(s.ctx, s.testApplicantID, staleGen)
	s.Equal(1, s.svc.sessions.count())
	s.Equal(1, s.svc.sessions.get(s.testApplicantID).Cursor)
}

func (s *ApplicationServiceTestSuite) TestAcceptGrantsRoles() {
	s.startMedical()
	review := s.completeMedical()

	s.mockClock.EXPECT().Now().Return(s.testTime.Add(time.Hour))
	s.mockMessenger.EXPECT().
		GrantRole(gomock.Any(), &messaging.GrantRoleInput{UserID: s.testApplicantID, RoleID: "role-medic"}).
		Return(&messaging.GrantRoleOutput{}, nil)
	s.mockMessenger.EXPECT().
		GrantRole(gomock.Any(), &messaging.GrantRoleInput{UserID: s.testApplicantID, RoleID: "role-staff"}).
		Return(&messaging.GrantRoleOutput{}, nil)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Accept(s.ctx, &AcceptInput{
		ReviewID:   review.ID,
		ReviewerID: s.testReviewerID,
	})
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusAccepted, out.Review.Status)
	s.Equal(s.testReviewerID, out.Review.ReviewerID)
	s.Equal([]string{"role-medic", "role-staff"}, out.GrantedRoleIDs)
	s.Empty(out.FailedRoleIDs)
}

func (s *ApplicationServiceTestSuite) TestAcceptPartialRoleGrantIsNotFatal() {
	s.startMedical()
	review := s.completeMedical()

	s.mockClock.EXPECT().Now().Return(s.testTime.Add(time.Hour))
	s.mockMessenger.EXPECT().
		GrantRole(gomock.Any(), &messaging.GrantRoleInput{UserID: s.testApplicantID, RoleID: "role-medic"}).
		Return(nil, errors.New("missing permissions"))
	s.mockMessenger.EXPECT().
		GrantRole(gomock.Any(), &messaging.GrantRoleInput{UserID: s.testApplicantID, RoleID: "role-staff"}).
		Return(&messaging.GrantRoleOutput{}, nil)
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Accept(s.ctx, &AcceptInput{
		ReviewID:   review.ID,
		ReviewerID: s.testReviewerID,
	})
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusAccepted, out.Review.Status)
	s.Equal([]string{"role-staff"}, out.GrantedRoleIDs)
	s.Equal([]string{"role-medic"}, out.FailedRoleIDs)
}

func (s *ApplicationServiceTestSuite) TestDenyRecordsReason() {
	s.startMedical()
	review := s.completeMedical()

	s.mockClock.EXPECT().Now().Return(s.testTime.Add(time.Hour))
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Deny(s.ctx, &DenyInput{
		ReviewID:   review.ID,
		ReviewerID: s.testReviewerID,
		Reason:     "too little experience",
	})
	s.Require().NoError(err)
	s.Equal(models.ReviewStatusDenied, out.Review.Status)
	s.Equal("too little experience", out.Review.Reason)
}

func (s *ApplicationServiceTestSuite) TestDecisionHappensExactlyOnce() {
	s.startMedical()
	review := s.completeMedical()

	s.mockClock.EXPECT().Now().Return(s.testTime.Add(time.Hour))
	s.mockMessenger.EXPECT().
		SendDirectMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendDirectMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	_, err := s.svc.Deny(s.ctx, &DenyInput{
		ReviewID:   review.ID,
		ReviewerID: s.testReviewerID,
	})
	s.Require().NoError(err)

	// Second decision of either kind is rejected before side effects
	_, err = s.svc.Accept(s.ctx, &AcceptInput{
		ReviewID:   review.ID,
		ReviewerID: "reviewer-2",
	})
	s.Require().ErrorIs(err, ErrAlreadyDecided)

	_, err = s.svc.Deny(s.ctx, &DenyInput{
		ReviewID:   review.ID,
		ReviewerID: "reviewer-2",
	})
	s.Require().ErrorIs(err, ErrAlreadyDecided)
}

func (s *ApplicationServiceTestSuite) TestSelfReviewRejected() {
	s.startMedical()
	review := s.completeMedical()

	_, err := s.svc.Accept(s.ctx, &AcceptInput{
		ReviewID:   review.ID,
		ReviewerID: s.testApplicantID,
	})
	s.Require().ErrorIs(err, ErrSelfReview)

	// Still pending for a legitimate reviewer
	s.Equal(models.ReviewStatusPending, review.Status)
}

func (s *ApplicationServiceTestSuite) TestDecideUnknownReview() {
	_, err := s.svc.Accept(s.ctx, &AcceptInput{
		ReviewID:   "no-such-review",
		ReviewerID: s.testReviewerID,
	})
	s.Require().ErrorIs(err, ErrReviewNotFound)
}

func (s *ApplicationServiceTestSuite) TestNewValidatesDependencies() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.Require().ErrorIs(err, ErrNoDivisions)

	_, err = New(&Config{Divisions: s.divisions})
	s.Require().ErrorIs(err, ErrNilMessenger)

	_, err = New(&Config{
		Divisions: s.divisions,
		Messenger: s.mockMessenger,
	})
	s.Require().ErrorIs(err, ErrNilAuditor)

	_, err = New(&Config{
		Divisions: s.divisions,
		Messenger: s.mockMessenger,
		Auditor:   s.mockAuditor,
	})
	s.Require().ErrorIs(err, ErrNilClock)

	_, err = New(&Config{
		Divisions: s.divisions,
		Messenger: s.mockMessenger,
		Auditor:   s.mockAuditor,
		Clock:     s.mockClock,
	})
	s.Require().ErrorIs(err, ErrNilUUIDGenerator)
}
