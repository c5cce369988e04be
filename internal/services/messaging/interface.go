package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/staffhq/warden/internal/services/messaging Service

// Service is the messaging platform boundary. Everything the workflows need
// from Discord goes through here, which keeps discordgo types out of the
// service layer and lets service tests mock the platform.
type Service interface {
	// SendChannelMessage posts a message, optionally with an embed, to a channel
	SendChannelMessage(ctx context.Context, input *SendChannelMessageInput) (*SendChannelMessageOutput, error)

	// SendDirectMessage DMs a user. Fails when the user's privacy settings
	// block DMs from the bot.
	SendDirectMessage(ctx context.Context, input *SendDirectMessageInput) (*SendDirectMessageOutput, error)

	// CreatePrivateChannel provisions a channel visible only to the given
	// members and roles
	CreatePrivateChannel(ctx context.Context, input *CreatePrivateChannelInput) (*CreatePrivateChannelOutput, error)

	// GrantRole assigns a role to a guild member
	GrantRole(ctx context.Context, input *GrantRoleInput) (*GrantRoleOutput, error)

	// RevokeRole removes a role from a guild member
	RevokeRole(ctx context.Context, input *RevokeRoleInput) (*RevokeRoleOutput, error)
}
