package entities

// ExerciseKind distinguishes the exercise templates a session can contain.
type ExerciseKind string

const (
	ExerciseMultipleChoice ExerciseKind = "multiple_choice"
	ExerciseNumericContext ExerciseKind = "numeric_context"
	ExerciseVerbUsage      ExerciseKind = "verb_usage"
	ExerciseProduceTerm    ExerciseKind = "produce_term"    // translation shown, term typed
	ExerciseProduceMeaning ExerciseKind = "produce_meaning" // term shown, translation typed
)

// ExerciseInstance is one rendered exercise within a practice session.
// Instances are generated fresh per session and never persisted.
type ExerciseInstance struct {
	ID            string
	ItemID        string
	Kind          ExerciseKind
	Prompt        string
	Options       []string // multiple choice kinds only
	CorrectIndex  int      // index into Options; -1 for typed exercises
	CorrectAnswer string
}

// IsMultipleChoice reports whether the exercise is answered by picking an
// option rather than typing.
func (e ExerciseInstance) IsMultipleChoice() bool {
	return len(e.Options) > 0
}
