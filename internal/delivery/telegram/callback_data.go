package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionLesson = "lesson"
	actionAnswer = "answer"
	actionReview = "review"
	actionReset  = "reset"
)

// Reset sub-actions.
const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates the callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses a callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildLessonStartCallback builds callback data for starting a lesson session.
func buildLessonStartCallback(lessonID string) string {
	return callbackData{
		Action: actionLesson,
		Params: []string{lessonID},
	}.encode()
}

// buildAnswerCallback builds callback data for answering the exercise at
// exerciseIndex with the given option.
func buildAnswerCallback(exerciseIndex, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{strconv.Itoa(exerciseIndex), strconv.Itoa(optionIndex)},
	}.encode()
}

// buildReviewStartCallback builds callback data for starting a review session.
func buildReviewStartCallback() string {
	return callbackData{Action: actionReview}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
