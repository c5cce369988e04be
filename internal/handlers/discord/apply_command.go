package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/services/application"
)

// ApplyCommand handles the /apply command
type ApplyCommand struct {
	BaseCommand
	appService application.Service
	logger     *zap.Logger
}

// NewApplyCommand creates a new apply command handler
func NewApplyCommand(appService application.Service, logger *zap.Logger) *ApplyCommand {
	return &ApplyCommand{
		BaseCommand: BaseCommand{
			Name:        "apply",
			Description: "Apply to a division or cancel an in-progress application",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start an application",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "division",
							Description: "Division key to apply to",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Cancel your in-progress application",
				},
			},
		},
		appService: appService,
		logger:     logger,
	}
}

// Handle processes a Discord interaction for the apply command
func (c *ApplyCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	switch data.Options[0].Name {
	case "start":
		divisionKey := data.Options[0].Options[0].StringValue()
		return c.handleStart(s, i, divisionKey)
	case "cancel":
		return c.handleCancel(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart handles the start subcommand
func (c *ApplyCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, divisionKey string) error {
	user := interactionUser(i)

	out, err := c.appService.StartApplication(context.Background(), &application.StartApplicationInput{
		ApplicantID:   user.ID,
		ApplicantName: interactionDisplayName(i),
		MemberRoleIDs: memberRoles(i),
		DivisionKey:   divisionKey,
	})
	if err != nil {
		return RespondWithError(s, i, startErrorMessage(err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Your **%s** application has started — check your DMs for question 1 of %d.", out.DivisionName, out.TotalQuestions))
}

// handleCancel handles the cancel subcommand
func (c *ApplyCommand) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)

	_, err := c.appService.CancelApplication(context.Background(), &application.CancelApplicationInput{
		OwnerID: user.ID,
	})
	if err != nil {
		if errors.Is(err, application.ErrNoSession) {
			return RespondWithEphemeralMessage(s, i, "You have no application in progress.")
		}
		c.logger.Warn("failed to cancel application", zap.String("user_id", user.ID), zap.Error(err))
		return RespondWithError(s, i, "Something went wrong cancelling your application.")
	}

	return RespondWithEphemeralMessage(s, i, "Your application has been cancelled.")
}

// startErrorMessage translates application start failures into user-facing text
func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrUnknownDivision):
		return "That division does not exist."
	case errors.Is(err, application.ErrIneligible):
		return "You do not hold a role required to apply to this division."
	case errors.Is(err, application.ErrSessionActive):
		return "You already have an application in progress. Finish or cancel it first."
	case errors.Is(err, application.ErrDMUnavailable):
		return "I couldn't DM you. Enable DMs from server members and try again."
	default:
		return "Something went wrong starting your application."
	}
}
