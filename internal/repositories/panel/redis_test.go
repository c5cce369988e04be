package panel

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/staffhq/warden/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	ctx := context.Background()

	err := s.repo.Save(ctx, &SaveInput{
		Panel: &models.Panel{
			Kind:      models.PanelKindApplication,
			Key:       "entry",
			ChannelID: "chan-1",
			MessageID: "msg-1",
			PostedBy:  "admin-1",
			PostedAt:  s.testNow,
		},
	})
	s.Require().NoError(err)

	p, err := s.repo.Get(ctx, &GetInput{
		Kind: models.PanelKindApplication,
		Key:  "entry",
	})
	s.Require().NoError(err)
	s.Equal("chan-1", p.ChannelID)
	s.Equal("msg-1", p.MessageID)
	s.Equal("admin-1", p.PostedBy)
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(context.Background(), &GetInput{
		Kind: models.PanelKindTicket,
	})
	s.ErrorIs(err, ErrPanelNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveReplaces() {
	ctx := context.Background()

	for _, msgID := range []string{"msg-1", "msg-2"} {
		err := s.repo.Save(ctx, &SaveInput{
			Panel: &models.Panel{
				Kind:      models.PanelKindTicket,
				ChannelID: "chan-1",
				MessageID: msgID,
				PostedAt:  s.testNow,
			},
		})
		s.Require().NoError(err)
	}

	p, err := s.repo.Get(ctx, &GetInput{Kind: models.PanelKindTicket})
	s.Require().NoError(err)
	s.Equal("msg-2", p.MessageID)

	panels, err := s.repo.List(ctx, &ListInput{Kind: models.PanelKindTicket})
	s.Require().NoError(err)
	s.Len(panels, 1)
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	ctx := context.Background()

	err := s.repo.Save(ctx, &SaveInput{
		Panel: &models.Panel{
			Kind:      models.PanelKindApplication,
			Key:       "entry",
			ChannelID: "chan-1",
			MessageID: "msg-1",
			PostedAt:  s.testNow,
		},
	})
	s.Require().NoError(err)

	err = s.repo.Delete(ctx, &DeleteInput{
		Kind: models.PanelKindApplication,
		Key:  "entry",
	})
	s.Require().NoError(err)

	_, err = s.repo.Get(ctx, &GetInput{
		Kind: models.PanelKindApplication,
		Key:  "entry",
	})
	s.ErrorIs(err, ErrPanelNotFound)

	// Deleting again is a no-op
	err = s.repo.Delete(ctx, &DeleteInput{
		Kind: models.PanelKindApplication,
		Key:  "entry",
	})
	s.Require().NoError(err)
}
