package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/staffhq/warden/internal/models"
)

// Embed colors
const (
	colorBlue  = 0x3498db
	colorGreen = 0x2ecc71
	colorRed   = 0xe74c3c
)

// Component custom ID prefixes. Review and apply IDs carry their subject
// after the colon.
const (
	customIDApplyPrefix  = "apply:"
	customIDAcceptPrefix = "app_accept:"
	customIDDenyPrefix   = "app_deny:"
	customIDTicketOpen   = "ticket:open"
	customIDTicketClose  = "ticket:close"
)

// renderApplicationPanel builds the panel message for a division
func renderApplicationPanel(div *models.Division) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Application", div.DisplayName),
		Description: "Click the button below to start your application. The questions arrive by DM.",
		Color:       colorBlue,
	}

	button := discordgo.Button{
		Label:    "Apply Now",
		Style:    discordgo.PrimaryButton,
		CustomID: customIDApplyPrefix + div.Key,
		Emoji: &discordgo.ComponentEmoji{
			Name: "📋",
		},
	}

	return embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{button},
		},
	}
}

// renderTicketPanel builds the ticket panel with its category dropdown
func renderTicketPanel(categories map[string]*models.TicketCategory) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "Support Tickets",
		Description: "Open a ticket by selecting a category below.",
		Color:       colorBlue,
	}

	options := make([]discordgo.SelectMenuOption, 0, len(categories))
	for _, cat := range categories {
		options = append(options, discordgo.SelectMenuOption{
			Label: cat.Label,
			Value: cat.Key,
		})
	}

	menu := discordgo.SelectMenu{
		CustomID:    customIDTicketOpen,
		Placeholder: "Select ticket type...",
		Options:     options,
	}

	return embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{menu},
		},
	}
}

// renderTicketCloseButton builds the close control posted inside a ticket channel
func renderTicketCloseButton() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close Ticket",
					Style:    discordgo.DangerButton,
					CustomID: customIDTicketClose,
				},
			},
		},
	}
}

// renderReviewMessage builds the decision surface posted to the division's
// log channel when a questionnaire completes
func renderReviewMessage(review *models.ApplicationReview, div *models.Division) (string, *discordgo.MessageEmbed, []discordgo.MessageComponent) {
	mentions := make([]string, 0, len(div.PingRoleIDs))
	for _, roleID := range div.PingRoleIDs {
		mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
	}
	content := strings.TrimSpace(fmt.Sprintf("%s New application received!", strings.Join(mentions, " ")))

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Application", div.DisplayName),
		Description: fmt.Sprintf("Application from <@%s>", review.Record.ApplicantID),
		Color:       colorGreen,
	}
	for _, qa := range review.Record.Answers {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  qa.Question,
			Value: qa.Answer,
		})
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Accept",
					Style:    discordgo.SuccessButton,
					CustomID: customIDAcceptPrefix + review.ID,
				},
				discordgo.Button{
					Label:    "Deny",
					Style:    discordgo.DangerButton,
					CustomID: customIDDenyPrefix + review.ID,
				},
			},
		},
	}

	return content, embed, components
}

// renderDecisionResult builds the public announcement for a decided review
func renderDecisionResult(review *models.ApplicationReview, div *models.Division) *discordgo.MessageEmbed {
	if review.Status == models.ReviewStatusAccepted {
		return &discordgo.MessageEmbed{
			Title:       "Application Result",
			Description: fmt.Sprintf("<@%s>'s application for **%s** has been **accepted**.", review.Record.ApplicantID, div.DisplayName),
			Color:       colorGreen,
		}
	}

	desc := fmt.Sprintf("<@%s>'s application for **%s** has been **denied**.", review.Record.ApplicantID, div.DisplayName)
	if review.Reason != "" {
		desc = fmt.Sprintf("%s\nReason: %s", desc, review.Reason)
	}
	return &discordgo.MessageEmbed{
		Title:       "Application Result",
		Description: desc,
		Color:       colorRed,
	}
}

// renderShiftSummary builds the clock-out report
func renderShiftSummary(userID string, startedAt, endedAt time.Time, worked, onBreak time.Duration, breaks int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Shift Summary",
		Description: fmt.Sprintf("<@%s> clocked out.", userID),
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Started", Value: fmt.Sprintf("<t:%d:t>", startedAt.Unix()), Inline: true},
			{Name: "Ended", Value: fmt.Sprintf("<t:%d:t>", endedAt.Unix()), Inline: true},
			{Name: "Worked", Value: worked.Round(time.Second).String(), Inline: true},
			{Name: "On break", Value: fmt.Sprintf("%s (%d breaks)", onBreak.Round(time.Second), breaks), Inline: true},
		},
	}
}

// renderShiftHistory builds the recent-shifts embed for a user
func renderShiftHistory(userID string, summaries []*models.ShiftSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Recent Shifts",
		Color: colorBlue,
	}

	if len(summaries) == 0 {
		embed.Description = fmt.Sprintf("<@%s> has no recorded shifts.", userID)
		return embed
	}

	embed.Description = fmt.Sprintf("Last %d shift(s) for <@%s>, newest first.", len(summaries), userID)
	for _, s := range summaries {
		// Timestamp markup only renders in field values, not names
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: s.StartedAt.Format("Mon, Jan 2 2006"),
			Value: fmt.Sprintf("Worked %s, on break %s (%d breaks)",
				s.WorkedDuration.Round(time.Second), s.BreakDuration.Round(time.Second), s.BreakCount),
		})
	}

	return embed
}

// renderWarningList builds the warning history embed for a user
func renderWarningList(userID string, records []*models.WarningRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Warnings",
		Color: colorRed,
	}

	if len(records) == 0 {
		embed.Description = fmt.Sprintf("<@%s> has no warnings.", userID)
		return embed
	}

	embed.Description = fmt.Sprintf("<@%s> has %d warning(s).", userID, len(records))
	for n, record := range records {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d on %s", n+1, record.IssuedAt.Format("Jan 2 2006")),
			Value: fmt.Sprintf("%s (issued by <@%s>)", record.Reason, record.IssuerID),
		})
	}

	return embed
}
