package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/config"
	panelRepo "github.com/staffhq/warden/internal/repositories/panel"
	warningRepo "github.com/staffhq/warden/internal/repositories/warning"
	"github.com/staffhq/warden/internal/services/application"
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/shift"
	"github.com/staffhq/warden/internal/services/ticket"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID

	guild      *config.GuildConfig
	appService application.Service
	tickets    ticket.Service
	shifts     shift.Service
	warnings   warningRepo.Repository
	panels     panelRepo.Repository
	auditor    audit.Service
	clock      clock.Clock
	uuidGen    uuid.UUID
	logger     *zap.Logger

	config *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the discordgo session, created by the caller so the
	// messaging service can share it
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Guild is the static per-guild configuration
	Guild *config.GuildConfig

	// Services and repositories
	ApplicationService application.Service
	TicketService      ticket.Service
	ShiftService       shift.Service
	WarningRepository  warningRepo.Repository
	PanelRepository    panelRepo.Repository
	Auditor            audit.Service
	Clock              clock.Clock
	UUIDGenerator      uuid.UUID
	Logger             *zap.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("discord session cannot be nil")
	}

	if cfg.Guild == nil {
		return nil, errors.New("guild config cannot be nil")
	}

	if cfg.ApplicationService == nil {
		return nil, errors.New("application service cannot be nil")
	}

	if cfg.TicketService == nil {
		return nil, errors.New("ticket service cannot be nil")
	}

	if cfg.ShiftService == nil {
		return nil, errors.New("shift service cannot be nil")
	}

	if cfg.WarningRepository == nil {
		return nil, errors.New("warning repository cannot be nil")
	}

	if cfg.PanelRepository == nil {
		return nil, errors.New("panel repository cannot be nil")
	}

	if cfg.Auditor == nil {
		return nil, errors.New("audit service cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	session := cfg.Session

	// Questionnaire answers arrive as plain DMs, so the bot needs message
	// content on top of the usual guild intents.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		guild:      cfg.Guild,
		appService: cfg.ApplicationService,
		tickets:    cfg.TicketService,
		shifts:     cfg.ShiftService,
		warnings:   cfg.WarningRepository,
		panels:     cfg.PanelRepository,
		auditor:    cfg.Auditor,
		clock:      cfg.Clock,
		uuidGen:    cfg.UUIDGenerator,
		logger:     cfg.Logger,
		config:     cfg,
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewApplyCommand(b.appService, b.logger),
		NewShiftCommand(b.shifts, b.logger),
		NewWarnCommand(b.warnings, b.auditor, b.clock, b.uuidGen, b.logger),
		NewPanelCommand(b.guild, b.panels, b.clock, b.logger),
	}
	for _, h := range handlers {
		if err := b.RegisterCommand(h); err != nil {
			return fmt.Errorf("failed to register %s command: %w", h.GetName(), err)
		}
	}

	b.logger.Info("bot is running")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command",
				zap.String("command", cmdName),
				zap.String("command_id", cmdID),
				zap.Error(err))
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register the command for that specific
	// guild; otherwise register it globally.
	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		zap.String("command", cmd.GetName()),
		zap.String("command_id", createdCmd.ID))

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("command handler failed",
					zap.String("command", i.ApplicationCommandData().Name),
					zap.Error(err))
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and select menus
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("component handler failed",
				zap.String("custom_id", i.MessageComponentData().CustomID),
				zap.Error(err))
		}
	}
}
