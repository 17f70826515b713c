package question

// Difficulty constants for readability.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is a single multiple-choice trivia question. Options always has
// four entries at creation; the fifty-fifty power-up blanks entries in place
// and records the removed text in HiddenOptions. OriginalIndex is the
// question's position in the classic bank (-1 for generated questions).
type Question struct {
	Prompt        string   `json:"question"`
	Answer        string   `json:"answer"`
	Options       []string `json:"options"`
	HiddenOptions []string `json:"hidden_options,omitempty"`
	OriginalIndex int      `json:"original_index"`
}

// VisibleOptions returns the non-blank options.
func (q Question) VisibleOptions() []string {
	visible := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt != "" {
			visible = append(visible, opt)
		}
	}
	return visible
}

// HasVisibleOption reports whether text matches a currently visible option.
func (q Question) HasVisibleOption(text string) bool {
	if text == "" {
		return false
	}
	for _, opt := range q.Options {
		if opt == text {
			return true
		}
	}
	return false
}

// Valid checks the creation invariant: four distinct options, one of which
// is the answer. The match is exact because answer scoring compares option
// text byte-for-byte; a case-only match would make the question unwinnable.
func (q Question) Valid() bool {
	if q.Prompt == "" || q.Answer == "" || len(q.Options) != OptionCount {
		return false
	}
	seen := make(map[string]bool, OptionCount)
	answerFound := false
	for _, opt := range q.Options {
		if opt == "" || seen[opt] {
			return false
		}
		seen[opt] = true
		if opt == q.Answer {
			answerFound = true
		}
	}
	return answerFound
}
