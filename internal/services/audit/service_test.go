package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/staffhq/warden/internal/services/messaging"
	messagingMocks "github.com/staffhq/warden/internal/services/messaging/mocks"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockMessenger *messagingMocks.MockService
	svc           *service
	ctx           context.Context
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockMessenger = messagingMocks.NewMockService(s.mockCtrl)

	s.ctx = context.Background()

	svc, err := New(&Config{
		Destinations: map[Category]string{
			CategoryApplication: "log-applications",
			CategoryModeration:  "log-moderation",
		},
		Messenger: s.mockMessenger,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *AuditServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) TestEmitRoutesByCategory() {
	s.mockMessenger.EXPECT().
		SendChannelMessage(gomock.Any(), &messaging.SendChannelMessageInput{
			ChannelID: "log-applications",
			Embed: &messaging.Embed{
				Title:       "Application submitted",
				Description: "someone applied",
				Color:       embedColor,
				Fields: []messaging.EmbedField{
					{Name: "Actor", Value: "<@user-1>", Inline: true},
					{Name: "Division", Value: "Medical", Inline: true},
				},
			},
		}).
		Return(&messaging.SendChannelMessageOutput{}, nil)

	s.svc.Emit(s.ctx, &EmitInput{
		Category:    CategoryApplication,
		Title:       "Application submitted",
		Description: "someone applied",
		ActorID:     "user-1",
		Fields:      []Field{{Name: "Division", Value: "Medical"}},
	})
}

func (s *AuditServiceTestSuite) TestEmitDropsUnresolvedCategory() {
	// No send expectation: shift has no configured channel
	s.svc.Emit(s.ctx, &EmitInput{
		Category: CategoryShift,
		Title:    "Shift started",
	})
}

func (s *AuditServiceTestSuite) TestEmitSwallowsDeliveryFailure() {
	s.mockMessenger.EXPECT().
		SendChannelMessage(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("channel deleted"))

	// Must not panic or propagate
	s.svc.Emit(s.ctx, &EmitInput{
		Category: CategoryModeration,
		Title:    "Warning issued",
	})
}

func (s *AuditServiceTestSuite) TestEmitNilInputIsNoOp() {
	s.svc.Emit(s.ctx, nil)
}
