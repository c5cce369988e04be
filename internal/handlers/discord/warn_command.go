package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/models"
	warningRepo "github.com/staffhq/warden/internal/repositories/warning"
	"github.com/staffhq/warden/internal/services/audit"
)

// WarnCommand handles the /warn command
type WarnCommand struct {
	BaseCommand
	warnings warningRepo.Repository
	auditor  audit.Service
	clock    clock.Clock
	uuidGen  uuid.UUID
	logger   *zap.Logger
}

// NewWarnCommand creates a new warn command handler
func NewWarnCommand(warnings warningRepo.Repository, auditor audit.Service, clk clock.Clock, uuidGen uuid.UUID, logger *zap.Logger) *WarnCommand {
	modPerm := int64(discordgo.PermissionModerateMembers)

	return &WarnCommand{
		BaseCommand: BaseCommand{
			Name:        "warn",
			Description: "Manage moderation warnings",
			Permissions: &modPerm,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Warn a user",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to warn",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "reason",
							Description: "Why the warning is being issued",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List a user's warnings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to look up",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clear",
					Description: "Clear a user's warnings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "User to clear",
							Required:    true,
						},
					},
				},
			},
		},
		warnings: warnings,
		auditor:  auditor,
		clock:    clk,
		uuidGen:  uuidGen,
		logger:   logger,
	}
}

// Handle processes a Discord interaction for the warn command
func (c *WarnCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	sub := data.Options[0]
	target := sub.Options[0].UserValue(s)

	switch sub.Name {
	case "add":
		reason := sub.Options[1].StringValue()
		return c.handleAdd(s, i, target, reason)
	case "list":
		return c.handleList(s, i, target)
	case "clear":
		return c.handleClear(s, i, target)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleAdd handles the add subcommand
func (c *WarnCommand) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, target *discordgo.User, reason string) error {
	ctx := context.Background()
	issuer := interactionUser(i)

	record := &models.WarningRecord{
		ID:       c.uuidGen.NewUUID(),
		UserID:   target.ID,
		IssuerID: issuer.ID,
		Reason:   reason,
		IssuedAt: c.clock.Now(),
	}

	if err := c.warnings.Append(ctx, &warningRepo.AppendInput{Record: record}); err != nil {
		c.logger.Error("failed to record warning",
			zap.String("user_id", target.ID),
			zap.Error(err))
		return RespondWithError(s, i, "Failed to record the warning.")
	}

	count, err := c.warnings.Count(ctx, &warningRepo.CountInput{UserID: target.ID})
	if err != nil {
		c.logger.Warn("failed to count warnings", zap.String("user_id", target.ID), zap.Error(err))
	}

	c.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryModeration,
		Title:       "Warning issued",
		Description: fmt.Sprintf("<@%s> warned <@%s>", issuer.ID, target.ID),
		ActorID:     issuer.ID,
		Fields: []audit.Field{
			{Name: "Reason", Value: reason},
			{Name: "Total warnings", Value: fmt.Sprintf("%d", count)},
		},
	})

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Warned <@%s> (warning #%d): %s", target.ID, count, reason))
}

// handleList handles the list subcommand
func (c *WarnCommand) handleList(s *discordgo.Session, i *discordgo.InteractionCreate, target *discordgo.User) error {
	records, err := c.warnings.List(context.Background(), &warningRepo.ListInput{UserID: target.ID})
	if err != nil {
		c.logger.Error("failed to list warnings", zap.String("user_id", target.ID), zap.Error(err))
		return RespondWithError(s, i, "Failed to look up warnings.")
	}

	return RespondWithEphemeralEmbed(s, i, renderWarningList(target.ID, records))
}

// handleClear handles the clear subcommand
func (c *WarnCommand) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate, target *discordgo.User) error {
	ctx := context.Background()
	issuer := interactionUser(i)

	if err := c.warnings.Clear(ctx, &warningRepo.ClearInput{UserID: target.ID}); err != nil {
		c.logger.Error("failed to clear warnings", zap.String("user_id", target.ID), zap.Error(err))
		return RespondWithError(s, i, "Failed to clear warnings.")
	}

	c.auditor.Emit(ctx, &audit.EmitInput{
		Category:    audit.CategoryModeration,
		Title:       "Warnings cleared",
		Description: fmt.Sprintf("<@%s> cleared all warnings for <@%s>", issuer.ID, target.ID),
		ActorID:     issuer.ID,
	})

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Cleared all warnings for <@%s>.", target.ID))
}
