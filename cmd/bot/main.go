package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/staffhq/warden/internal/common/clock"
	"github.com/staffhq/warden/internal/common/uuid"
	"github.com/staffhq/warden/internal/config"
	"github.com/staffhq/warden/internal/handlers/discord"
	"github.com/staffhq/warden/internal/observability"
	panelRepo "github.com/staffhq/warden/internal/repositories/panel"
	shiftlogRepo "github.com/staffhq/warden/internal/repositories/shiftlog"
	warningRepo "github.com/staffhq/warden/internal/repositories/warning"
	"github.com/staffhq/warden/internal/services/application"
	"github.com/staffhq/warden/internal/services/audit"
	"github.com/staffhq/warden/internal/services/messaging"
	"github.com/staffhq/warden/internal/services/shift"
	"github.com/staffhq/warden/internal/services/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	guildCfg, err := config.LoadGuildConfig(cfg.App.GuildConfigPath)
	if err != nil {
		logger.Fatal("failed to load guild config", zap.Error(err))
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	warnings, err := warningRepo.NewRedis(&warningRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create warning repository", zap.Error(err))
	}

	panels, err := panelRepo.NewRedis(&panelRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create panel repository", zap.Error(err))
	}

	shiftHistory, err := shiftlogRepo.NewRedis(&shiftlogRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal("failed to create shift log repository", zap.Error(err))
	}

	// The discordgo session is shared by the messaging service and the bot
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Fatal("failed to create Discord session", zap.Error(err))
	}

	clk := clock.New()
	uuidGen := uuid.New()

	messenger, err := messaging.New(&messaging.Config{
		Session: session,
		GuildID: cfg.Discord.GuildID,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to create messaging service", zap.Error(err))
	}

	auditor, err := audit.New(&audit.Config{
		Destinations: auditDestinations(guildCfg),
		Messenger:    messenger,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("failed to create audit service", zap.Error(err))
	}

	appSvc, err := application.New(&application.Config{
		Divisions:     guildCfg.Divisions,
		AnswerTimeout: cfg.App.AnswerTimeout,
		Messenger:     messenger,
		Auditor:       auditor,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to create application service", zap.Error(err))
	}

	ticketSvc, err := ticket.New(&ticket.Config{
		Categories:    guildCfg.TicketCategories,
		Messenger:     messenger,
		Auditor:       auditor,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to create ticket service", zap.Error(err))
	}

	shiftSvc, err := shift.New(&shift.Config{
		History:       shiftHistory,
		Auditor:       auditor,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to create shift service", zap.Error(err))
	}

	bot, err := discord.New(&discord.Config{
		Session:            session,
		ApplicationID:      cfg.Discord.ApplicationID,
		GuildID:            cfg.Discord.GuildID,
		Guild:              guildCfg,
		ApplicationService: appSvc,
		TicketService:      ticketSvc,
		ShiftService:       shiftSvc,
		WarningRepository:  warnings,
		PanelRepository:    panels,
		Auditor:            auditor,
		Clock:              clk,
		UUIDGenerator:      uuidGen,
		Logger:             logger,
	})
	if err != nil {
		logger.Fatal("failed to create Discord bot", zap.Error(err))
	}

	if err := bot.Start(); err != nil {
		logger.Fatal("failed to start Discord bot", zap.Error(err))
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", zap.Error(err))
	}

	logger.Info("bot has been shut down")
}

// auditDestinations converts the YAML category map into typed audit routing
func auditDestinations(guildCfg *config.GuildConfig) map[audit.Category]string {
	dest := make(map[audit.Category]string, len(guildCfg.AuditChannels))
	for category, channelID := range guildCfg.AuditChannels {
		dest[audit.Category(category)] = channelID
	}
	return dest
}
