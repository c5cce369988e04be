package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/services/application"
	"github.com/staffhq/warden/internal/services/ticket"
)

// handleComponentInteraction routes button clicks and select menu picks by
// their custom ID
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, customIDApplyPrefix):
		return b.handleApplyButton(s, i, strings.TrimPrefix(customID, customIDApplyPrefix))
	case strings.HasPrefix(customID, customIDAcceptPrefix):
		return b.handleDecisionButton(s, i, strings.TrimPrefix(customID, customIDAcceptPrefix), true)
	case strings.HasPrefix(customID, customIDDenyPrefix):
		return b.handleDecisionButton(s, i, strings.TrimPrefix(customID, customIDDenyPrefix), false)
	case customID == customIDTicketOpen:
		return b.handleTicketSelect(s, i)
	case customID == customIDTicketClose:
		return b.handleTicketCloseButton(s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown component: %s", customID))
	}
}

// handleApplyButton starts a questionnaire for the division on the panel
func (b *Bot) handleApplyButton(s *discordgo.Session, i *discordgo.InteractionCreate, divisionKey string) error {
	user := interactionUser(i)

	out, err := b.appService.StartApplication(context.Background(), &application.StartApplicationInput{
		ApplicantID:   user.ID,
		ApplicantName: interactionDisplayName(i),
		MemberRoleIDs: memberRoles(i),
		DivisionKey:   divisionKey,
	})
	if err != nil {
		return RespondWithError(s, i, startErrorMessage(err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Your **%s** application has started. Check your DMs for question 1 of %d.", out.DivisionName, out.TotalQuestions))
}

// handleDecisionButton resolves a pending review from its Accept or Deny button
func (b *Bot) handleDecisionButton(s *discordgo.Session, i *discordgo.InteractionCreate, reviewID string, accept bool) error {
	ctx := context.Background()
	reviewer := interactionUser(i)

	var embed *discordgo.MessageEmbed
	if accept {
		out, err := b.appService.Accept(ctx, &application.AcceptInput{
			ReviewID:   reviewID,
			ReviewerID: reviewer.ID,
		})
		if err != nil {
			return RespondWithError(s, i, decisionErrorMessage(err))
		}
		embed = renderDecisionResult(out.Review, out.Division)
		if len(out.FailedRoleIDs) > 0 {
			b.logger.Warn("accepted with partial role grant",
				zap.String("review_id", reviewID),
				zap.Strings("failed_role_ids", out.FailedRoleIDs))
		}
	} else {
		out, err := b.appService.Deny(ctx, &application.DenyInput{
			ReviewID:   reviewID,
			ReviewerID: reviewer.ID,
		})
		if err != nil {
			return RespondWithError(s, i, decisionErrorMessage(err))
		}
		embed = renderDecisionResult(out.Review, out.Division)
	}

	// Retire the Accept/Deny buttons on the review message
	emptyComponents := []discordgo.MessageComponent{}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    i.ChannelID,
		ID:         i.Message.ID,
		Components: &emptyComponents,
	}); err != nil {
		b.logger.Warn("failed to retire review buttons",
			zap.String("review_id", reviewID),
			zap.Error(err))
	}

	return RespondWithEmbed(s, i, embed)
}

// decisionErrorMessage translates review decision failures into user-facing text
func decisionErrorMessage(err error) string {
	switch {
	case errors.Is(err, application.ErrReviewNotFound):
		return "That review no longer exists."
	case errors.Is(err, application.ErrAlreadyDecided):
		return "This application has already been decided."
	case errors.Is(err, application.ErrSelfReview):
		return "You cannot decide your own application."
	default:
		return "Something went wrong deciding this application."
	}
}

// handleTicketSelect opens a ticket for the category picked from the dropdown
func (b *Bot) handleTicketSelect(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return RespondWithError(s, i, "No category selected.")
	}
	categoryKey := values[0]

	ctx := context.Background()
	user := interactionUser(i)

	out, err := b.tickets.Open(ctx, &ticket.OpenInput{
		RequesterID:   user.ID,
		RequesterName: interactionDisplayName(i),
		CategoryKey:   categoryKey,
	})
	if err != nil {
		if errors.Is(err, ticket.ErrTicketExists) {
			existing, getErr := b.tickets.GetOpen(ctx, &ticket.GetOpenInput{
				RequesterID: user.ID,
				CategoryKey: categoryKey,
			})
			if getErr == nil {
				return RespondWithEphemeralMessage(s, i,
					fmt.Sprintf("You already have an open ticket for this category: <#%s>", existing.Ticket.ChannelID))
			}
			return RespondWithEphemeralMessage(s, i, "You already have an open ticket for this category.")
		}
		if errors.Is(err, ticket.ErrUnknownCategory) {
			return RespondWithError(s, i, "That ticket category does not exist.")
		}
		b.logger.Error("failed to open ticket",
			zap.String("user_id", user.ID),
			zap.String("category", categoryKey),
			zap.Error(err))
		return RespondWithError(s, i, "Failed to open your ticket.")
	}

	// Post the close control inside the new channel
	if _, err := s.ChannelMessageSendComplex(out.Ticket.ChannelID, &discordgo.MessageSend{
		Components: renderTicketCloseButton(),
	}); err != nil {
		b.logger.Warn("failed to post close button",
			zap.String("channel_id", out.Ticket.ChannelID),
			zap.Error(err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Your **%s** ticket is open: <#%s>", out.Category.Label, out.Ticket.ChannelID))
}

// handleTicketCloseButton retires the ticket behind the current channel and
// deletes the channel
func (b *Bot) handleTicketCloseButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user := interactionUser(i)

	out, err := b.tickets.Close(context.Background(), &ticket.CloseInput{
		ChannelID: i.ChannelID,
		ActorID:   user.ID,
	})
	if err != nil {
		b.logger.Error("failed to close ticket",
			zap.String("channel_id", i.ChannelID),
			zap.Error(err))
		return RespondWithError(s, i, "Failed to close this ticket.")
	}

	if !out.Closed {
		return RespondWithEphemeralMessage(s, i, "This channel has no open ticket.")
	}

	if err := RespondWithEphemeralMessage(s, i, "Ticket closed. This channel will be removed."); err != nil {
		b.logger.Warn("failed to acknowledge close", zap.Error(err))
	}

	if _, err := s.ChannelDelete(i.ChannelID); err != nil {
		b.logger.Warn("failed to delete ticket channel",
			zap.String("channel_id", i.ChannelID),
			zap.Error(err))
	}

	return nil
}

// handleMessageCreate feeds inbound messages into questionnaire sessions.
// Non-applicants and off-channel messages cost one map lookup and return.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := context.Background()
	out, err := b.appService.HandleReply(ctx, &application.HandleReplyInput{
		AuthorID:  m.Author.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	})
	if err != nil {
		if errors.Is(err, application.ErrNoSession) {
			return
		}
		b.logger.Error("failed to handle reply",
			zap.String("author_id", m.Author.ID),
			zap.Error(err))
		return
	}

	if out.Ignored || !out.Completed {
		// The service already DMed the next question
		return
	}

	// Questionnaire complete, post the review surface for staff
	content, embed, components := renderReviewMessage(out.Review, out.Division)
	if _, err := s.ChannelMessageSendComplex(out.Division.LogChannelID, &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}); err != nil {
		b.logger.Error("failed to post review message",
			zap.String("review_id", out.Review.ID),
			zap.String("channel_id", out.Division.LogChannelID),
			zap.Error(err))
	}
}
