package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lingora/lingora-bot/internal/domain/entities"
)

// handleLessonsCommand lists the available lessons with start buttons.
func (h *Handler) handleLessonsCommand(ctx context.Context, chatID int64) {
	lessons, err := h.lessonCatalog.GetAll(ctx)
	if err != nil {
		h.logger.Error("failed to list lessons", zap.Error(err))
		h.send(newHTMLMessage(chatID, msgInternalError))
		return
	}
	if len(lessons) == 0 {
		h.send(newHTMLMessage(chatID, msgNoLessons))
		return
	}

	msg := newHTMLMessage(chatID, msgPickLesson)
	kb := buildLessonsKeyboard(lessons)
	msg.ReplyMarkup = kb
	h.send(msg)
}

// handleLessonCommand starts a session for the lesson given as argument.
func (h *Handler) handleLessonCommand(ctx context.Context, chatID, learnerID int64, args string) {
	lessonID := strings.TrimSpace(args)
	if lessonID == "" {
		h.send(newHTMLMessage(chatID, msgLessonUsage))
		return
	}

	h.startLessonSession(ctx, chatID, learnerID, lessonID)
}

func (h *Handler) startLessonSession(ctx context.Context, chatID, learnerID int64, lessonID string) {
	if _, err := h.lessonCatalog.GetByID(ctx, lessonID); err != nil {
		h.send(newHTMLMessage(chatID, msgLessonNotFound))
		return
	}

	exercises, err := h.sessionService.BuildLessonSession(ctx, learnerID, lessonID, h.targetCount)
	if err != nil {
		h.logger.Error("failed to build lesson session",
			zap.Int64("learner_id", learnerID),
			zap.String("lesson_id", lessonID),
			zap.Error(err),
		)
		h.send(newHTMLMessage(chatID, msgSessionUnavailable))
		return
	}

	// An empty session is a legitimate outcome for a thin corpus; tell
	// the learner instead of starting a dead session.
	if len(exercises) == 0 {
		h.send(newHTMLMessage(chatID, msgNoExercises))
		return
	}

	h.sessions.put(chatID, &activeSession{
		LearnerID: learnerID,
		LessonID:  lessonID,
		Exercises: exercises,
	})

	h.askNext(chatID)
}

// handleReviewCommand starts a session over the learner's due items.
func (h *Handler) handleReviewCommand(ctx context.Context, chatID, learnerID int64) {
	exercises, err := h.sessionService.BuildReviewSession(ctx, learnerID, time.Now(), h.targetCount)
	if err != nil {
		h.logger.Error("failed to build review session",
			zap.Int64("learner_id", learnerID),
			zap.Error(err),
		)
		h.send(newHTMLMessage(chatID, msgSessionUnavailable))
		return
	}

	if len(exercises) == 0 {
		h.send(newHTMLMessage(chatID, msgNoReviewsDue))
		return
	}

	h.sessions.put(chatID, &activeSession{
		LearnerID: learnerID,
		Exercises: exercises,
	})

	h.askNext(chatID)
}

// handleProgressCommand shows the learner's progress summary.
func (h *Handler) handleProgressCommand(ctx context.Context, chatID, learnerID int64) {
	summary, err := h.progressService.Summary(ctx, learnerID, time.Now())
	if err != nil {
		h.logger.Error("failed to get progress summary",
			zap.Int64("learner_id", learnerID),
			zap.Error(err),
		)
		h.send(newHTMLMessage(chatID, msgProgressUnavailable))
		return
	}

	h.send(newHTMLMessage(chatID, formatProgress(summary)))
}

// handleResetCommand asks for confirmation before wiping learner state.
func (h *Handler) handleResetCommand(chatID int64) {
	msg := newHTMLMessage(chatID, msgResetConfirm)
	kb := buildResetKeyboard()
	msg.ReplyMarkup = kb
	h.send(msg)
}

// askNext sends the current exercise of the chat's session, or the
// summary when the session is finished.
func (h *Handler) askNext(chatID int64) {
	sess := h.sessions.get(chatID)
	if sess == nil {
		return
	}

	ex := sess.current()
	if ex == nil {
		h.finishSession(chatID, sess)
		return
	}

	sess.AskedAt = time.Now()

	msg := newHTMLMessage(chatID, formatExercise(*ex, sess.Index+1, len(sess.Exercises)))
	if ex.IsMultipleChoice() {
		kb := buildOptionsKeyboard(sess.Index, ex.Options)
		msg.ReplyMarkup = kb
	}
	h.send(msg)
}

func (h *Handler) finishSession(chatID int64, sess *activeSession) {
	h.sessions.remove(chatID)
	h.send(newHTMLMessage(chatID, fmt.Sprintf(msgSessionDone, sess.Correct, len(sess.Exercises))))
}

// gradeAnswer records the result of one answered exercise and advances
// the session.
func (h *Handler) gradeAnswer(ctx context.Context, chatID int64, sess *activeSession, ex *entities.ExerciseInstance, wasCorrect bool, rating int) {
	elapsedMs := time.Since(sess.AskedAt).Milliseconds()

	if _, err := h.statsService.RecordItemResult(ctx, sess.LearnerID, ex.ItemID, wasCorrect, elapsedMs); err != nil {
		h.logger.Error("failed to record item result",
			zap.Int64("learner_id", sess.LearnerID),
			zap.String("item_id", ex.ItemID),
			zap.Error(err),
		)
	}

	if _, err := h.reviewService.RecordReview(ctx, sess.LearnerID, ex.ItemID, rating, time.Now()); err != nil {
		h.logger.Error("failed to record review",
			zap.Int64("learner_id", sess.LearnerID),
			zap.String("item_id", ex.ItemID),
			zap.Error(err),
		)
	}

	if wasCorrect {
		sess.Correct++
		h.send(newHTMLMessage(chatID, msgCorrect))
	} else {
		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgWrong, ex.CorrectAnswer)))
	}

	sess.Index++
	h.askNext(chatID)
}

// handleTypedAnswer treats a plain text message as the answer to the
// current typed exercise, if any.
func (h *Handler) handleTypedAnswer(ctx context.Context, chatID, learnerID int64, text string) {
	sess := h.sessions.get(chatID)
	if sess == nil || sess.LearnerID != learnerID {
		h.send(newHTMLMessage(chatID, msgNoActiveSession))
		return
	}

	ex := sess.current()
	if ex == nil || ex.IsMultipleChoice() {
		h.send(newHTMLMessage(chatID, msgUseButtons))
		return
	}

	// Exact recall earns the top grade; a fuzzy match still passes but
	// grades lower; a miss fails the review outright.
	var (
		wasCorrect bool
		rating     int
	)
	switch {
	case h.answers.Exact(text, ex.CorrectAnswer):
		wasCorrect, rating = true, ratingPerfect
	case h.answers.Validate(text, ex.CorrectAnswer):
		wasCorrect, rating = true, ratingGood
	default:
		wasCorrect, rating = false, ratingFail
	}

	h.gradeAnswer(ctx, chatID, sess, ex, wasCorrect, rating)
}
