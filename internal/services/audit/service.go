package audit

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/services/messaging"
)

const embedColor = 0x5865f2

// Config holds configuration for the audit service
type Config struct {
	// Destinations maps category to log channel ID. Categories absent from
	// the map are dropped at emit time.
	Destinations map[Category]string

	// Messenger delivers the events
	Messenger messaging.Service

	// Logger for locally reporting dropped or failed events
	Logger *zap.Logger
}

// service implements the Service interface
type service struct {
	destinations map[Category]string
	messenger    messaging.Service
	logger       *zap.Logger
}

// New creates a new audit service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Messenger == nil {
		return nil, errors.New("messenger cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		destinations: cfg.Destinations,
		messenger:    cfg.Messenger,
		logger:       logger,
	}, nil
}

// Emit sends an event to its category's log channel. Unresolved categories
// and delivery failures never propagate to the triggering workflow.
func (s *service) Emit(ctx context.Context, input *EmitInput) {
	if input == nil {
		return
	}

	channelID, ok := s.destinations[input.Category]
	if !ok || channelID == "" {
		s.logger.Warn("dropping audit event with unresolved category",
			zap.String("category", string(input.Category)),
			zap.String("title", input.Title))
		return
	}

	embed := &messaging.Embed{
		Title:       input.Title,
		Description: input.Description,
		Color:       embedColor,
	}
	if input.ActorID != "" {
		embed.Fields = append(embed.Fields, messaging.EmbedField{
			Name:   "Actor",
			Value:  fmt.Sprintf("<@%s>", input.ActorID),
			Inline: true,
		})
	}
	for _, f := range input.Fields {
		embed.Fields = append(embed.Fields, messaging.EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}

	_, err := s.messenger.SendChannelMessage(ctx, &messaging.SendChannelMessageInput{
		ChannelID: channelID,
		Embed:     embed,
	})
	if err != nil {
		s.logger.Warn("failed to deliver audit event",
			zap.String("category", string(input.Category)),
			zap.String("channel_id", channelID),
			zap.Error(err))
	}
}
