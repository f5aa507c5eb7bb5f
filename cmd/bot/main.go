package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/config"
	"github.com/lingora/lingora-bot/internal/delivery/telegram"
	"github.com/lingora/lingora-bot/internal/logger"
	"github.com/lingora/lingora-bot/internal/repository"
	"github.com/lingora/lingora-bot/internal/service"
)

func main() {
	// Local runs keep secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zlog.Fatal("failed to create bot api", zap.Error(err))
	}

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "lessons", Description: "Browse lessons"},
		{Command: "lesson", Description: "Start a lesson (usage: /lesson food-01)"},
		{Command: "review", Description: "Practice items due for review"},
		{Command: "progress", Description: "Show learning progress"},
		{Command: "reset", Description: "Erase all progress"},
		{Command: "help", Description: "Help"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zlog.Warn("failed to set bot commands", zap.Error(err))
	}

	zlog.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Content corpus.
	itemRepo, err := repository.NewItemRepository(cfg.Content.ItemsJSONPath)
	if err != nil {
		zlog.Fatal("failed to load items", zap.Error(err))
	}
	lessonRepo, err := repository.NewLessonRepository(cfg.Content.LessonsJSONPath)
	if err != nil {
		zlog.Fatal("failed to load lessons", zap.Error(err))
	}

	// Learner-state store.
	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("missing database url", zap.Error(err))
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		zlog.Fatal("failed to parse database config", zap.Error(err))
	}
	poolConfig.MaxConns = int32(cfg.DB.MaxConnections)
	poolConfig.MaxConnLifetime = cfg.DB.MaxConnLifetime
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	learnerRepo := repository.NewLearnerRepository(pool)
	stateRepo := repository.NewReviewStateRepository(pool)
	statRepo := repository.NewItemStatRepository(pool)
	resetRepo := repository.NewResetRepository(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	learnerService := service.NewLearnerService(learnerRepo)
	reviewService := service.NewReviewService(stateRepo)
	statsService := service.NewStatsService(statRepo)
	optionGen := service.NewOptionGenerator(rng)
	orchestrator := service.NewSessionOrchestrator(
		itemRepo,
		lessonRepo,
		statRepo,
		stateRepo,
		optionGen,
		rng,
		zlog,
	)
	progressService := service.NewProgressService(itemRepo, stateRepo, statRepo)
	resetService := service.NewResetService(resetRepo)
	validator := service.NewAnswerValidator()

	handler := telegram.NewHandler(
		bot,
		zlog,
		learnerService,
		orchestrator,
		lessonRepo,
		statsService,
		reviewService,
		progressService,
		resetService,
		validator,
		cfg.Session.TargetCount,
	)
	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zlog.Fatal("handler stopped", zap.Error(err))
	}

	zlog.Info("shutdown signal received")
}
