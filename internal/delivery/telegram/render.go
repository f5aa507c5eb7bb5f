package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lingora/lingora-bot/internal/domain/entities"
	"github.com/lingora/lingora-bot/internal/service"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// formatExercise renders an exercise prompt with its position in the
// session.
func formatExercise(ex entities.ExerciseInstance, position, total int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>%d/%d</b>  ", position, total))
	sb.WriteString(html.EscapeString(ex.Prompt))
	if !ex.IsMultipleChoice() {
		sb.WriteString("\n\n<i>Type your answer.</i>")
	}
	return sb.String()
}

// buildOptionsKeyboard renders one button per option, bound to the
// exercise index so stale taps can be ignored.
func buildOptionsKeyboard(exerciseIndex int, options []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for i, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, buildAnswerCallback(exerciseIndex, i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildLessonsKeyboard renders one start button per lesson.
func buildLessonsKeyboard(lessons []entities.LessonSpec) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(lessons))
	for _, lesson := range lessons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(lesson.Title, buildLessonStartCallback(lesson.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, erase everything", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

// formatProgress renders the /progress summary.
func formatProgress(summary *service.ProgressSummary) string {
	bar := buildProgressBar(summary.Learned, summary.TotalItems, 20)

	return fmt.Sprintf(
		"📊 <b>Your progress</b>\n\n%s\n\n"+
			"✅ Learned: %d / %d\n"+
			"📖 In progress: %d\n"+
			"⏳ Not started: %d\n"+
			"🔔 Due now: %d\n"+
			"🎯 Accuracy: %.1f%%",
		bar,
		summary.Learned, summary.TotalItems,
		summary.InProgress,
		summary.NotStarted,
		summary.DueNow,
		summary.Accuracy,
	)
}

// buildProgressBar renders a filled/empty bar of the given width.
func buildProgressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
