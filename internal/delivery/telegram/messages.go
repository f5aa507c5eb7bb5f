// messages.go contains message templates for Telegram.

package telegram

const (
	msgWelcome = "Welcome to Lingora! 🌍\n\n" +
		"Practice vocabulary in short adaptive sessions: the bot tracks what you struggle with and brings it back at the right time.\n\n" +
		"/lessons — pick a lesson to practice\n" +
		"/review — repeat what is due today\n" +
		"/progress — see how far you got\n" +
		"/help — all commands"

	msgHelp = "Commands:\n\n" +
		"/lessons — list available lessons\n" +
		"/lesson &lt;id&gt; — start a specific lesson\n" +
		"/review — practice items due for review\n" +
		"/progress — your learning progress\n" +
		"/reset — erase all progress and start over\n" +
		"/help — this message"

	msgUnknownCommand = "Unknown command. Try /help for the list of available commands."

	msgPickLesson     = "Pick a lesson to practice:"
	msgNoLessons      = "No lessons are available yet. Check back later."
	msgLessonUsage    = "Usage: /lesson &lt;lesson id&gt;. Use /lessons to browse."
	msgLessonNotFound = "That lesson does not exist. Use /lessons to browse."

	msgNoExercises  = "This lesson has nothing to practice yet. Its items may still be in authoring; try another lesson."
	msgNoReviewsDue = "Nothing is due for review right now. 🎉\nStart a lesson with /lessons or come back later."

	msgSessionUnavailable  = "Could not build a practice session. Try again later."
	msgProgressUnavailable = "Could not load your progress. Try again later."
	msgInternalError       = "Something went wrong. Try again later."

	msgNoActiveSession = "No active session. Start one with /lessons or /review."
	msgUseButtons      = "Use the answer buttons for this exercise."

	msgCorrect     = "✅ Correct!"
	msgWrong       = "❌ Not quite. The answer is: <b>%s</b>"
	msgSessionDone = "Session complete! 🏁\nYou got <b>%d of %d</b> right. Come back tomorrow to keep the streak going."

	msgResetConfirm   = "This erases all your review history and statistics. Are you sure?"
	msgResetDone      = "All progress has been erased. Start fresh with /lessons."
	msgResetCancelled = "Reset cancelled. Your progress is safe."
)
