package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Config holds configuration for the Discord-backed messaging service
type Config struct {
	// Session is an opened discordgo session
	Session *discordgo.Session

	// GuildID is the guild the bot serves. Channel and role operations
	// apply here.
	GuildID string

	// Logger for outbound call diagnostics
	Logger *zap.Logger
}

// service implements the Service interface against discordgo
type service struct {
	session *discordgo.Session
	guildID string
	logger  *zap.Logger
}

// New creates a new Discord-backed messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}
	if cfg.GuildID == "" {
		return nil, errors.New("guild ID cannot be empty")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		session: cfg.Session,
		guildID: cfg.GuildID,
		logger:  logger,
	}, nil
}

// SendChannelMessage posts a message to a channel
func (s *service) SendChannelMessage(ctx context.Context, input *SendChannelMessageInput) (*SendChannelMessageOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	send := &discordgo.MessageSend{
		Content: input.Content,
	}
	if input.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toDiscordEmbed(input.Embed)}
	}

	msg, err := s.session.ChannelMessageSendComplex(input.ChannelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", input.ChannelID, err)
	}

	return &SendChannelMessageOutput{MessageID: msg.ID}, nil
}

// SendDirectMessage DMs a user
func (s *service) SendDirectMessage(ctx context.Context, input *SendDirectMessageInput) (*SendDirectMessageOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	dm, err := s.session.UserChannelCreate(input.UserID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to open DM channel with %s: %w", input.UserID, err)
	}

	send := &discordgo.MessageSend{
		Content: input.Content,
	}
	if input.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{toDiscordEmbed(input.Embed)}
	}

	msg, err := s.session.ChannelMessageSendComplex(dm.ID, send, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to DM user %s: %w", input.UserID, err)
	}

	return &SendDirectMessageOutput{
		ChannelID: dm.ID,
		MessageID: msg.ID,
	}, nil
}

// CreatePrivateChannel provisions a channel visible only to the given
// members and roles. Everyone else is denied by an @everyone overwrite.
func (s *service) CreatePrivateChannel(ctx context.Context, input *CreatePrivateChannelInput) (*CreatePrivateChannelOutput, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and channel name cannot be empty")
	}

	overwrites := []*discordgo.PermissionOverwrite{
		{
			// @everyone shares its ID with the guild
			ID:   s.guildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
	}

	var allow int64 = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionReadMessageHistory

	for _, memberID := range input.MemberIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    memberID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: allow,
		})
	}

	for _, roleID := range input.RoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: allow,
		})
	}

	channel, err := s.session.GuildChannelCreateComplex(s.guildID, discordgo.GuildChannelCreateData{
		Name:                 input.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                input.Topic,
		ParentID:             input.ParentID,
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create private channel %s: %w", input.Name, err)
	}

	return &CreatePrivateChannelOutput{ChannelID: channel.ID}, nil
}

// GrantRole assigns a role to a guild member
func (s *service) GrantRole(ctx context.Context, input *GrantRoleInput) (*GrantRoleOutput, error) {
	if input == nil || input.UserID == "" || input.RoleID == "" {
		return nil, errors.New("input, user ID and role ID cannot be empty")
	}

	err := s.session.GuildMemberRoleAdd(s.guildID, input.UserID, input.RoleID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to grant role %s to %s: %w", input.RoleID, input.UserID, err)
	}

	return &GrantRoleOutput{}, nil
}

// RevokeRole removes a role from a guild member
func (s *service) RevokeRole(ctx context.Context, input *RevokeRoleInput) (*RevokeRoleOutput, error) {
	if input == nil || input.UserID == "" || input.RoleID == "" {
		return nil, errors.New("input, user ID and role ID cannot be empty")
	}

	err := s.session.GuildMemberRoleRemove(s.guildID, input.UserID, input.RoleID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to revoke role %s from %s: %w", input.RoleID, input.UserID, err)
	}

	return &RevokeRoleOutput{}, nil
}

func toDiscordEmbed(e *Embed) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}
