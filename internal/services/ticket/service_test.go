package ticket

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

type TicketServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessenger *messagingMocks.MockService
	mockAuditor   *auditMocks.MockService
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	svc           *service
	ctx           context.Context

	testTime        time.Time
	testRequesterID string
	testChannelID   string
	categories      map[string]*models.TicketCategory
}

func (s *TicketServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessenger = messagingMocks.NewMockService(s.mockCtrl)
	s.mockAuditor = auditMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s.testRequesterID = "requester-1"
	s.testChannelID = "ticket-channel-1"

	s.categories = map[string]*models.TicketCategory{
		"general": {
			Key:             "general",
			Label:           "General Support",
			ParentChannelID: "parent-support",
			HolderRoleIDs:   []string{"role-support"},
		},
		"appeal": {
			Key:           "appeal",
			Label:         "Ban Appeal",
			HolderRoleIDs: []string{"role-admin"},
		},
	}

	svc, err := New(&Config{
		Categories:    s.categories,
		Messenger:     s.mockMessenger,
		Auditor:       s.mockAuditor,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *TicketServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTicketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}

// openGeneral opens a general ticket for the test requester
func (s *TicketServiceTestSuite) openGeneral() *OpenOutput {
	s.mockUUID.EXPECT().NewUUID().Return("ticket-id-1")
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		CreatePrivateChannel(gomock.Any(), &messaging.CreatePrivateChannelInput{
			Name:      "ticket-general-some-user",
			ParentID:  "parent-support",
			MemberIDs: []string{s.testRequesterID},
			RoleIDs:   []string{"role-support"},
			Topic:     "General Support ticket for Some User",
		}).
		Return(&messaging.CreatePrivateChannelOutput{ChannelID: s.testChannelID}, nil)
	s.mockMessenger.EXPECT().
		SendChannelMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendChannelMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Open(s.ctx, &OpenInput{
		RequesterID:   s.testRequesterID,
		RequesterName: "Some User",
		CategoryKey:   "general",
	})
	s.Require().NoError(err)
	return out
}

func (s *TicketServiceTestSuite) TestOpen() {
	out := s.openGeneral()

	s.Equal("ticket-id-1", out.Ticket.ID)
	s.Equal(s.testChannelID, out.Ticket.ChannelID)
	s.Equal("general", out.Ticket.CategoryKey)
	s.True(out.Ticket.OpenedAt.Equal(s.testTime))
	s.Equal("General Support", out.Category.Label)
}

func (s *TicketServiceTestSuite) TestOpenUnknownCategory() {
	_, err := s.svc.Open(s.ctx, &OpenInput{
		RequesterID: s.testRequesterID,
		CategoryKey: "complaints",
	})
	s.Require().ErrorIs(err, ErrUnknownCategory)
}

func (s *TicketServiceTestSuite) TestOpenRejectsDuplicate() {
	s.openGeneral()

	s.mockUUID.EXPECT().NewUUID().Return("ticket-id-2")
	s.mockClock.EXPECT().Now().Return(s.testTime)

	_, err := s.svc.Open(s.ctx, &OpenInput{
		RequesterID:   s.testRequesterID,
		RequesterName: "Some User",
		CategoryKey:   "general",
	})
	s.Require().ErrorIs(err, ErrTicketExists)
}

func (s *TicketServiceTestSuite) TestOpenDifferentCategoryAllowed() {
	s.openGeneral()

	s.mockUUID.EXPECT().NewUUID().Return("ticket-id-2")
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		CreatePrivateChannel(gomock.Any(), gomock.Any()).
		Return(&messaging.CreatePrivateChannelOutput{ChannelID: "ticket-channel-2"}, nil)
	s.mockMessenger.EXPECT().
		SendChannelMessage(gomock.Any(), gomock.Any()).
		Return(&messaging.SendChannelMessageOutput{}, nil)
	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())

	out, err := s.svc.Open(s.ctx, &OpenInput{
		RequesterID:   s.testRequesterID,
		RequesterName: "Some User",
		CategoryKey:   "appeal",
	})
	s.Require().NoError(err)
	s.Equal("appeal", out.Ticket.CategoryKey)
}

func (s *TicketServiceTestSuite) TestOpenReleasesSlotOnChannelFailure() {
	s.mockUUID.EXPECT().NewUUID().Return("ticket-id-1")
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockMessenger.EXPECT().
		CreatePrivateChannel(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("missing permissions"))

	_, err := s.svc.Open(s.ctx, &OpenInput{
		RequesterID:   s.testRequesterID,
		RequesterName: "Some User",
		CategoryKey:   "general",
	})
	s.Require().Error(err)
	s.NotErrorIs(err, ErrTicketExists)

	// The reservation rolled back, so a retry can succeed
	s.openGeneral()
}

func (s *TicketServiceTestSuite) TestCloseAndReopen() {
	s.openGeneral()

	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())
	out, err := s.svc.Close(s.ctx, &CloseInput{
		ChannelID: s.testChannelID,
		ActorID:   "staff-1",
	})
	s.Require().NoError(err)
	s.True(out.Closed)
	s.Equal("ticket-id-1", out.Ticket.ID)

	// Closed means the slot is free again
	s.openGeneral()
}

func (s *TicketServiceTestSuite) TestCloseUnknownChannelIsNoOp() {
	out, err := s.svc.Close(s.ctx, &CloseInput{
		ChannelID: "random-channel",
		ActorID:   "staff-1",
	})
	s.Require().NoError(err)
	s.False(out.Closed)
	s.Nil(out.Ticket)
}

func (s *TicketServiceTestSuite) TestCloseTwiceSecondIsNoOp() {
	s.openGeneral()

	s.mockAuditor.EXPECT().Emit(gomock.Any(), gomock.Any())
	out, err := s.svc.Close(s.ctx, &CloseInput{ChannelID: s.testChannelID, ActorID: "staff-1"})
	s.Require().NoError(err)
	s.True(out.Closed)

	out, err = s.svc.Close(s.ctx, &CloseInput{ChannelID: s.testChannelID, ActorID: "staff-1"})
	s.Require().NoError(err)
	s.False(out.Closed)
}

func (s *TicketServiceTestSuite) TestGetOpen() {
	s.openGeneral()

	out, err := s.svc.GetOpen(s.ctx, &GetOpenInput{
		RequesterID: s.testRequesterID,
		CategoryKey: "general",
	})
	s.Require().NoError(err)
	s.Equal("ticket-id-1", out.Ticket.ID)

	_, err = s.svc.GetOpen(s.ctx, &GetOpenInput{
		RequesterID: s.testRequesterID,
		CategoryKey: "appeal",
	})
	s.Require().ErrorIs(err, ErrTicketNotFound)

	_, err = s.svc.GetOpen(s.ctx, &GetOpenInput{
		RequesterID: s.testRequesterID,
		CategoryKey: "complaints",
	})
	s.Require().ErrorIs(err, ErrUnknownCategory)
}

func (s *TicketServiceTestSuite) TestNewValidatesDependencies() {
	_, err := New(nil)
	s.Require().ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.Require().ErrorIs(err, ErrNoCategories)

	_, err = New(&Config{Categories: s.categories})
	s.Require().ErrorIs(err, ErrNilMessenger)
}
