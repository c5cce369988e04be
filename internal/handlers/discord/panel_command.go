package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/config"
	"github.com/staffhq/warden/internal/models"
	panelRepo "github.com/staffhq/warden/internal/repositories/panel"
)

// PanelCommand handles the /panel command
type PanelCommand struct {
	BaseCommand
	guild  *config.GuildConfig
	panels panelRepo.Repository
	clock  clock.Clock
	logger *zap.Logger
}

// NewPanelCommand creates a new panel command handler
func NewPanelCommand(guild *config.GuildConfig, panels panelRepo.Repository, clk clock.Clock, logger *zap.Logger) *PanelCommand {
	adminPerm := int64(discordgo.PermissionAdministrator)

	divisionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(guild.Divisions))
	for key, div := range guild.Divisions {
		divisionChoices = append(divisionChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  div.DisplayName,
			Value: key,
		})
	}

	return &PanelCommand{
		BaseCommand: BaseCommand{
			Name:        "panel",
			Description: "Post interactive panels",
			Permissions: &adminPerm,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "application",
					Description: "Post an application panel for a division",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "division",
							Description: "Division to post the panel for",
							Required:    true,
							Choices:     divisionChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "ticket",
					Description: "Post the support ticket panel",
				},
			},
		},
		guild:  guild,
		panels: panels,
		clock:  clk,
		logger: logger,
	}
}

// Handle processes a Discord interaction for the panel command
func (c *PanelCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	switch data.Options[0].Name {
	case "application":
		return c.handleApplication(s, i, data.Options[0].Options[0].StringValue())
	case "ticket":
		return c.handleTicket(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleApplication posts the apply panel for one division
func (c *PanelCommand) handleApplication(s *discordgo.Session, i *discordgo.InteractionCreate, divisionKey string) error {
	div, ok := c.guild.Divisions[divisionKey]
	if !ok {
		return RespondWithError(s, i, fmt.Sprintf("Unknown division %q.", divisionKey))
	}

	channelID := c.guild.ApplicationPanelChannelID

	embed, components := renderApplicationPanel(div)
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		c.logger.Error("failed to post application panel",
			zap.String("division", divisionKey),
			zap.String("channel_id", channelID),
			zap.Error(err))
		return RespondWithError(s, i, "Failed to post the panel.")
	}

	c.recordPanel(s, i, &models.Panel{
		Kind:      models.PanelKindApplication,
		Key:       divisionKey,
		ChannelID: channelID,
		MessageID: msg.ID,
	})

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Posted the %s application panel in <#%s>.", div.DisplayName, channelID))
}

// handleTicket posts the ticket panel
func (c *PanelCommand) handleTicket(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channelID := c.guild.TicketPanelChannelID

	embed, components := renderTicketPanel(c.guild.TicketCategories)
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		c.logger.Error("failed to post ticket panel",
			zap.String("channel_id", channelID),
			zap.Error(err))
		return RespondWithError(s, i, "Failed to post the panel.")
	}

	c.recordPanel(s, i, &models.Panel{
		Kind:      models.PanelKindTicket,
		ChannelID: channelID,
		MessageID: msg.ID,
	})

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Posted the ticket panel in <#%s>.", channelID))
}

// recordPanel persists a posted panel and removes the superseded message,
// if any. Failures are logged but never surfaced; the panel itself is live.
func (c *PanelCommand) recordPanel(s *discordgo.Session, i *discordgo.InteractionCreate, p *models.Panel) {
	ctx := context.Background()

	previous, err := c.panels.Get(ctx, &panelRepo.GetInput{Kind: p.Kind, Key: p.Key})
	if err == nil {
		if delErr := s.ChannelMessageDelete(previous.ChannelID, previous.MessageID); delErr != nil {
			c.logger.Warn("failed to delete superseded panel",
				zap.String("kind", string(p.Kind)),
				zap.String("key", p.Key),
				zap.Error(delErr))
		}
	} else if !errors.Is(err, panelRepo.ErrPanelNotFound) {
		c.logger.Warn("failed to look up previous panel", zap.Error(err))
	}

	p.PostedBy = interactionUser(i).ID
	p.PostedAt = c.clock.Now()

	if err := c.panels.Save(ctx, &panelRepo.SaveInput{Panel: p}); err != nil {
		c.logger.Warn("failed to record panel",
			zap.String("kind", string(p.Kind)),
			zap.String("key", p.Key),
			zap.Error(err))
	}
}
