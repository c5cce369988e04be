package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/staffhq/warden/internal/common/clock/mocks"
	uuidMocks "github.com/staffhq/warden/internal/common/uuid/mocks"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/repositories/shiftlog"
	shiftlogMocks "github.com/staffhq/warden/internal/repositories/shiftlog/mocks"
	auditMocks "github.com/staffhq/warden/internal/services/audit/mocks"
)

type ShiftServiceTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockHistory *shiftlogMocks.MockRepository
	mockAuditor *auditMocks.MockService
	mockClock   *clockMocks.MockClock
	mockUUID    *uuidMocks.MockUUID
	svc         *service
	ctx         context.Context

	testOwnerID string
	t0          time.Time
}

func (s *ShiftServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockHistory = shiftlogMocks.NewMockRepository(s.mockCtrl)
	s.mockAuditor = auditMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testOwnerID = "worker-1"
	s.t0 = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	svc, err := New(&Config{
		History:       s.mockHistory,
		Auditor:       s.mockAuditor,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ShiftServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}

// startShift clocks the test owner in at t0
func (s *ShiftServiceTestSuite) startShift() {
	s.mockClock.EXPECT().Now().Return(s.t0)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Start(s.ctx, &StartInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.True(out.StartedAt.Equal(s.t0))
}

func (s *ShiftServiceTestSuite) TestFullShiftArithmetic() {
	s.startShift()

	// Break from t0+1h to t0+1h30m
	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour))
	_, err := s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour + 30*time.Minute))
	resumeOut, err := s.svc.Resume(s.ctx, &ResumeInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(30*time.Minute, resumeOut.BreakDuration)

	// End at t0+4h: 4h elapsed, 30m on break, 3h30m worked
	s.mockClock.EXPECT().Now().Return(s.t0.Add(4 * time.Hour))
	s.mockUUID.EXPECT().NewUUID().Return("shift-id-1")
	s.mockHistory.EXPECT().
		Append(gomock.Any(), &shiftlog.AppendInput{
			Summary: &models.ShiftSummary{
				ID:             "shift-id-1",
				OwnerID:        s.testOwnerID,
				StartedAt:      s.t0,
				EndedAt:        s.t0.Add(4 * time.Hour),
				WorkedDuration: 3*time.Hour + 30*time.Minute,
				BreakDuration:  30 * time.Minute,
				BreakCount:     1,
			},
		}).
		Return(nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(3*time.Hour+30*time.Minute, out.WorkedDuration)
	s.Equal(30*time.Minute, out.BreakDuration)
	s.Equal(1, out.BreakCount)
	s.True(out.StartedAt.Equal(s.t0))
	s.True(out.EndedAt.Equal(s.t0.Add(4 * time.Hour)))
}

func (s *ShiftServiceTestSuite) TestEndDuringOpenBreakCountsBreakToEnd() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(2 * time.Hour))
	_, err := s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)

	// End at t0+3h with the break still open: the last hour counts as break
	s.mockClock.EXPECT().Now().Return(s.t0.Add(3 * time.Hour))
	s.mockUUID.EXPECT().NewUUID().Return("shift-id-1")
	s.mockHistory.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(2*time.Hour, out.WorkedDuration)
	s.Equal(time.Hour, out.BreakDuration)
}

func (s *ShiftServiceTestSuite) TestStartWhileStartedRejected() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Minute))
	_, err := s.svc.Start(s.ctx, &StartInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrInvalidShiftState)
}

func (s *ShiftServiceTestSuite) TestBreakWithoutShiftRejected() {
	s.mockClock.EXPECT().Now().Return(s.t0)
	_, err := s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrNoActiveShift)
}

func (s *ShiftServiceTestSuite) TestDoubleBreakRejected() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour))
	_, err := s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour + time.Minute))
	_, err = s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrInvalidShiftState)
}

func (s *ShiftServiceTestSuite) TestResumeWhileWorkingRejected() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour))
	_, err := s.svc.Resume(s.ctx, &ResumeInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrInvalidShiftState)
}

func (s *ShiftServiceTestSuite) TestEndWithoutShiftRejected() {
	s.mockClock.EXPECT().Now().Return(s.t0)
	_, err := s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrNoActiveShift)
}

func (s *ShiftServiceTestSuite) TestNonOwnerRejected() {
	_, err := s.svc.Start(s.ctx, &StartInput{OwnerID: s.testOwnerID, ActorID: "someone-else"})
	s.Require().ErrorIs(err, ErrNotShiftOwner)

	_, err = s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: "someone-else"})
	s.Require().ErrorIs(err, ErrNotShiftOwner)
}

func (s *ShiftServiceTestSuite) TestStatus() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour))
	_, err := s.svc.Break(s.ctx, &BreakInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour + 15*time.Minute))
	out, err := s.svc.Status(s.ctx, &StatusInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.True(out.OnBreak)
	s.Equal(time.Hour, out.WorkedSoFar)
	s.Equal(15*time.Minute, out.BreakSoFar)

	// Status does not consume the shift
	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour + 20*time.Minute))
	_, err = s.svc.Status(s.ctx, &StatusInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
}

func (s *ShiftServiceTestSuite) TestEndSurvivesHistoryFailure() {
	s.startShift()

	s.mockClock.EXPECT().Now().Return(s.t0.Add(time.Hour))
	s.mockUUID.EXPECT().NewUUID().Return("shift-id-1")
	s.mockHistory.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(context.DeadlineExceeded)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().NoError(err)
	s.Equal(time.Hour, out.WorkedDuration)

	// The live shift is gone even though the summary write failed
	s.mockClock.EXPECT().Now().Return(s.t0.Add(2 * time.Hour))
	_, err = s.svc.End(s.ctx, &EndInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID})
	s.Require().ErrorIs(err, ErrNoActiveShift)
}

func (s *ShiftServiceTestSuite) TestHistory() {
	summaries := []*models.ShiftSummary{
		{ID: "shift-2", OwnerID: s.testOwnerID},
		{ID: "shift-1", OwnerID: s.testOwnerID},
	}
	s.mockHistory.EXPECT().
		ListRecent(gomock.Any(), &shiftlog.ListRecentInput{OwnerID: s.testOwnerID, Limit: 5}).
		Return(summaries, nil)

	out, err := s.svc.History(s.ctx, &HistoryInput{OwnerID: s.testOwnerID, ActorID: s.testOwnerID, Limit: 5})
	s.Require().NoError(err)
	s.Equal(summaries, out.Summaries)
}

func (s *ShiftServiceTestSuite) TestNewValidatesDependencies() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.Require().ErrorIs(err, ErrNilHistory)

	_, err = New(&Config{History: s.mockHistory})
	s.Require().ErrorIs(err, ErrNilAuditor)

	_, err = New(&Config{History: s.mockHistory, Auditor: s.mockAuditor})
	s.Require().ErrorIs(err, ErrNilClock)

	_, err = New(&Config{History: s.mockHistory, Auditor: s.mockAuditor, Clock: s.mockClock})
	s.Require().ErrorIs(err, ErrNilUUIDGenerator)
}
