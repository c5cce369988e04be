package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/services/shift"
)

// ShiftCommand handles the /shift command
type ShiftCommand struct {
	BaseCommand
	shiftService shift.Service
	logger       *zap.Logger
}

// NewShiftCommand creates a new shift command handler
func NewShiftCommand(shiftService shift.Service, logger *zap.Logger) *ShiftCommand {
	return &ShiftCommand{
		BaseCommand: BaseCommand{
			Name:        "shift",
			Description: "Track your work shift",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Clock in",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "break",
					Description: "Go on break",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resume",
					Description: "Come back from break",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "Clock out and report your time",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show your current shift",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show your recent shifts",
				},
			},
		},
		shiftService: shiftService,
		logger:       logger,
	}
}

// Handle processes a Discord interaction for the shift command
func (c *ShiftCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	ctx := context.Background()
	user := interactionUser(i)

	switch data.Options[0].Name {
	case "start":
		out, err := c.shiftService.Start(ctx, &shift.StartInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			return RespondWithError(s, i, shiftErrorMessage(err))
		}
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Clocked in at <t:%d:t>. Have a good shift!", out.StartedAt.Unix()))

	case "break":
		_, err := c.shiftService.Break(ctx, &shift.BreakInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			return RespondWithError(s, i, shiftErrorMessage(err))
		}
		return RespondWithEphemeralMessage(s, i, "Break started. Use `/shift resume` when you're back.")

	case "resume":
		out, err := c.shiftService.Resume(ctx, &shift.ResumeInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			return RespondWithError(s, i, shiftErrorMessage(err))
		}
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Welcome back — you were on break for %s.", out.BreakDuration.Round(time.Second)))

	case "end":
		out, err := c.shiftService.End(ctx, &shift.EndInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			return RespondWithError(s, i, shiftErrorMessage(err))
		}
		return RespondWithEmbed(s, i, renderShiftSummary(user.ID, out.StartedAt, out.EndedAt, out.WorkedDuration, out.BreakDuration, out.BreakCount))

	case "status":
		out, err := c.shiftService.Status(ctx, &shift.StatusInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			return RespondWithError(s, i, shiftErrorMessage(err))
		}
		state := "working"
		if out.OnBreak {
			state = "on break"
		}
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("On shift since <t:%d:t> (%s). Worked %s, on break %s.",
				out.StartedAt.Unix(), state, out.WorkedSoFar.Round(time.Second), out.BreakSoFar.Round(time.Second)))

	case "history":
		out, err := c.shiftService.History(ctx, &shift.HistoryInput{OwnerID: user.ID, ActorID: user.ID})
		if err != nil {
			c.logger.Warn("failed to list shift history", zap.String("user_id", user.ID), zap.Error(err))
			return RespondWithError(s, i, "Failed to look up your shift history.")
		}
		return RespondWithEphemeralEmbed(s, i, renderShiftHistory(user.ID, out.Summaries))

	default:
		return errors.New("unknown subcommand")
	}
}

// shiftErrorMessage translates shift failures into user-facing text
func shiftErrorMessage(err error) string {
	switch {
	case errors.Is(err, shift.ErrNoActiveShift):
		return "You don't have a shift in progress. Use `/shift start` to clock in."
	case errors.Is(err, shift.ErrInvalidShiftState):
		return "That doesn't fit your current shift state."
	case errors.Is(err, shift.ErrNotShiftOwner):
		return "Only the shift owner can do that."
	default:
		return "Something went wrong with your shift."
	}
}
