package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/messaging"
)

const openNoticeColor = 0x3498db

// service implements the Service interface
type service struct {
	categories map[string]*models.TicketCategory
	messenger  messaging.Service
	auditor    audit.Service
	clock      clock.Clock
	uuidGen    uuid.UUID
	logger     *zap.Logger

	// mu guards both indexes. The (requester, category) slot is reserved
	// under the lock before the blocking channel-creation call, so two
	// rapid requests cannot both provision a channel.
	mu        sync.Mutex
	byKey     map[string]*models.Ticket
	byChannel map[string]*models.Ticket
}

// New creates a new ticket service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if len(cfg.Categories) == 0 {
		return nil, ErrNoCategories
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

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		categories: cfg.Categories,
		messenger:  cfg.Messenger,
		auditor:    cfg.Auditor,
		clock:      cfg.Clock,
		uuidGen:    cfg.UUIDGenerator,
		logger:     logger,
		byKey:      make(map[string]*models.Ticket),
		byChannel:  make(map[string]*models.Ticket),
	}, nil
}

// Open provisions a private support channel for a requester and category
func (s *service) Open(ctx context.Context, input *OpenInput) (*OpenOutput, error) {
	if input == nil || input.RequesterID == "" {
		return nil, errors.New("input and requester ID cannot be empty")
	}

	category, ok := s.categories[input.CategoryKey]
	if !ok {
		return nil, ErrUnknownCategory
	}

	key := activeKey(input.RequesterID, category.Key)

	ticket := &models.Ticket{
		ID:            s.uuidGen.NewUUID(),
		RequesterID:   input.RequesterID,
		RequesterName: input.RequesterName,
		CategoryKey:   category.Key,
		OpenedAt:      s.clock.Now(),
	}

	s.mu.Lock()
	if _, exists := s.byKey[key]; exists {
		s.mu.Unlock()
		return nil, ErrTicketExists
	}
	// Reserve the slot before the blocking platform call
	s.byKey[key] = ticket
	s.mu.Unlock()

	created, err := s.messenger.CreatePrivateChannel(ctx, &messaging.CreatePrivateChannelInput{
		Name:      channelName(category.Key, input.RequesterName),
		ParentID:  category.ParentChannelID,
		MemberIDs: []string{input.RequesterID},
		RoleIDs:   category.HolderRoleIDs,
		Topic:     fmt.Sprintf("%s ticket for %s", category.Label, input.RequesterName),
	})
	if err != nil {
		s.mu.Lock()
		delete(s.byKey, key)
		s.mu.Unlock()
		return nil, fmt.Errorf("failed to provision ticket channel: %w", err)
	}

	s.mu.Lock()
	ticket.ChannelID = created.ChannelID
	s.byChannel[created.ChannelID] = ticket
	s.mu.Unlock()

	// Opening notice pings the holder roles inside the new channel
	mentions := make([]string, 0, len(category.HolderRoleIDs))
	for _, roleID := range category.HolderRoleIDs {
		mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
	}
	_, err = s.messenger.SendChannelMessage(ctx, &messaging.SendChannelMessageInput{
		ChannelID: created.ChannelID,
		Content:   strings.Join(mentions, " "),
		Embed: &messaging.Embed{
			Title:       fmt.Sprintf("%s ticket", category.Label),
			Description: fmt.Sprintf("<@%s> opened a new ticket.", input.RequesterID),
			Color:       openNoticeColor,
		},
	})
	if err != nil {
		s.logger.Warn("failed to post ticket opening notice",
			zap.String("channel_id", created.ChannelID),
			zap.Error(err))
	}

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryTicket,
		Title:       "Ticket opened",
		Description: fmt.Sprintf("<@%s> opened a %s ticket in <#%s>", input.RequesterID, category.Label, created.ChannelID),
		ActorID:     input.RequesterID,
		Fields: []audit.Field{
			{Name: "Category", Value: category.Label},
		},
	})

	return &OpenOutput{
		Ticket:   ticket,
		Category: category,
	}, nil
}

// Close retires the ticket backing a channel. Archival or deletion of the
// underlying channel stays with the caller.
func (s *service) Close(ctx context.Context, input *CloseInput) (*CloseOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	s.mu.Lock()
	ticket, ok := s.byChannel[input.ChannelID]
	if !ok {
		s.mu.Unlock()
		return &CloseOutput{Closed: false}, nil
	}
	delete(s.byChannel, input.ChannelID)
	delete(s.byKey, activeKey(ticket.RequesterID, ticket.CategoryKey))
	s.mu.Unlock()

	category := s.categories[ticket.CategoryKey]

	s.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryTicket,
		Title:       "Ticket closed",
		Description: fmt.Sprintf("<@%s>'s %s ticket was closed by <@%s>", ticket.RequesterID, category.Label, input.ActorID),
		ActorID:     input.ActorID,
		Fields: []audit.Field{
			{Name: "Category", Value: category.Label},
		},
	})

	return &CloseOutput{
		Closed: true,
		Ticket: ticket,
	}, nil
}

// GetOpen returns the requester's open ticket for a category
func (s *service) GetOpen(ctx context.Context, input *GetOpenInput) (*GetOpenOutput, error) {
	if input == nil || input.RequesterID == "" {
		return nil, errors.New("input and requester ID cannot be empty")
	}

	if _, ok := s.categories[input.CategoryKey]; !ok {
		return nil, ErrUnknownCategory
	}

	s.mu.Lock()
	ticket, ok := s.byKey[activeKey(input.RequesterID, input.CategoryKey)]
	s.mu.Unlock()

	if !ok {
		return nil, ErrTicketNotFound
	}

	return &GetOpenOutput{Ticket: ticket}, nil
}

func activeKey(requesterID, categoryKey string) string {
	return fmt.Sprintf("%s:%s", requesterID, categoryKey)
}

func channelName(categoryKey, requesterName string) string {
	name := fmt.Sprintf("ticket-%s-%s", categoryKey, requesterName)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}
