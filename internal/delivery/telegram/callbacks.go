package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Grades assigned at the delivery boundary. The scheduler accepts the
// full 0-5 scale; the bot only distinguishes these outcomes.
const (
	ratingPerfect = 5 // exact typed recall
	ratingGood    = 4 // fuzzy typed recall or correct option pick
	ratingFail    = 1 // wrong answer
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	learnerID := cb.From.ID

	cd := decodeCallback(cb.Data)
	switch cd.Action {
	case actionLesson:
		if len(cd.Params) == 1 {
			h.startLessonSession(ctx, chatID, learnerID, cd.Params[0])
		}

	case actionReview:
		h.handleReviewCommand(ctx, chatID, learnerID)

	case actionAnswer:
		h.handleAnswerCallback(ctx, chatID, learnerID, cd)

	case actionReset:
		h.handleResetCallback(ctx, chatID, learnerID, cd)

	default:
		h.logger.Debug("unknown callback action", zap.String("data", cb.Data))
	}

	// Remove the user's "clock".
	answer := tgbotapi.NewCallback(cb.ID, "")
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Error("callback answer error", zap.Error(err))
	}
}

// handleAnswerCallback grades an option pick for the current exercise.
// Taps on stale keyboards (earlier exercises) are ignored.
func (h *Handler) handleAnswerCallback(ctx context.Context, chatID, learnerID int64, cd callbackData) {
	if len(cd.Params) != 2 {
		h.logger.Debug("malformed answer callback", zap.String("data", cd.Raw))
		return
	}

	exerciseIndex, err1 := strconv.Atoi(cd.Params[0])
	optionIndex, err2 := strconv.Atoi(cd.Params[1])
	if err1 != nil || err2 != nil {
		h.logger.Debug("malformed answer callback", zap.String("data", cd.Raw))
		return
	}

	sess := h.sessions.get(chatID)
	if sess == nil || sess.LearnerID != learnerID {
		h.send(newHTMLMessage(chatID, msgNoActiveSession))
		return
	}

	if exerciseIndex != sess.Index {
		return
	}

	ex := sess.current()
	if ex == nil || !ex.IsMultipleChoice() {
		return
	}
	if optionIndex < 0 || optionIndex >= len(ex.Options) {
		h.logger.Debug("option index out of range", zap.String("data", cd.Raw))
		return
	}

	wasCorrect := optionIndex == ex.CorrectIndex
	rating := ratingFail
	if wasCorrect {
		rating = ratingGood
	}

	h.gradeAnswer(ctx, chatID, sess, ex, wasCorrect, rating)
}

func (h *Handler) handleResetCallback(ctx context.Context, chatID, learnerID int64, cd callbackData) {
	if len(cd.Params) != 1 {
		return
	}

	switch cd.Params[0] {
	case resetConfirm:
		if err := h.resetService.ResetLearner(ctx, learnerID); err != nil {
			h.logger.Error("failed to reset learner",
				zap.Int64("learner_id", learnerID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, msgInternalError))
			return
		}
		h.sessions.remove(chatID)
		h.send(newHTMLMessage(chatID, msgResetDone))

	case resetCancel:
		h.send(newHTMLMessage(chatID, msgResetCancelled))
	}
}
