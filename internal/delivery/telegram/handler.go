// Package telegram delivers practice sessions over the Telegram Bot API.
package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/domain/entities"
	"github.com/lingora/lingora-bot/internal/service"
)

type LearnerService interface {
	EnsureLearner(ctx context.Context, learnerID, chatID int64) error
}

type SessionService interface {
	BuildLessonSession(ctx context.Context, learnerID int64, lessonID string, target int) ([]entities.ExerciseInstance, error)
	BuildReviewSession(ctx context.Context, learnerID int64, now time.Time, target int) ([]entities.ExerciseInstance, error)
}

type LessonCatalog interface {
	GetByID(_ context.Context, id string) (*entities.LessonSpec, error)
	GetAll(_ context.Context) ([]entities.LessonSpec, error)
}

type StatsService interface {
	RecordItemResult(ctx context.Context, learnerID int64, itemID string, wasCorrect bool, elapsedMs int64) (*entities.ItemStat, error)
}

type ReviewService interface {
	RecordReview(ctx context.Context, learnerID int64, itemID string, rating int, now time.Time) (entities.ReviewState, error)
	CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error)
}

type ProgressService interface {
	Summary(ctx context.Context, learnerID int64, now time.Time) (*service.ProgressSummary, error)
}

type ResetService interface {
	ResetLearner(ctx context.Context, learnerID int64) error
}

type AnswerChecker interface {
	Validate(userAnswer, correctAnswer string) bool
	Exact(userAnswer, correctAnswer string) bool
}

type Handler struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger

	learnerService  LearnerService
	sessionService  SessionService
	lessonCatalog   LessonCatalog
	statsService    StatsService
	reviewService   ReviewService
	progressService ProgressService
	resetService    ResetService
	answers         AnswerChecker

	sessions    *sessionStore
	targetCount int
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	learnerService LearnerService,
	sessionService SessionService,
	lessonCatalog LessonCatalog,
	statsService StatsService,
	reviewService ReviewService,
	progressService ProgressService,
	resetService ResetService,
	answers AnswerChecker,
	targetCount int,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		learnerService:  learnerService,
		sessionService:  sessionService,
		lessonCatalog:   lessonCatalog,
		statsService:    statsService,
		reviewService:   reviewService,
		progressService: progressService,
		resetService:    resetService,
		answers:         answers,
		sessions:        newSessionStore(),
		targetCount:     targetCount,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("learner_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.learnerService.EnsureLearner(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure learner",
			zap.Int64("learner_id", from.ID),
			zap.Error(err),
		)
	}

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			h.send(newHTMLMessage(chatID, msgWelcome))

		case "help":
			h.send(newHTMLMessage(chatID, msgHelp))

		case "lessons":
			h.handleLessonsCommand(ctx, chatID)

		case "lesson":
			h.handleLessonCommand(ctx, chatID, from.ID, update.Message.CommandArguments())

		case "review":
			h.handleReviewCommand(ctx, chatID, from.ID)

		case "progress":
			h.handleProgressCommand(ctx, chatID, from.ID)

		case "reset":
			h.handleResetCommand(chatID)

		default:
			h.send(newHTMLMessage(chatID, msgUnknownCommand))
		}

		return
	}

	h.handleTypedAnswer(ctx, chatID, from.ID, update.Message.Text)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
