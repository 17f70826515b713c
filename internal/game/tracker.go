package game

// Tracker accumulates score and progress counters. All counters are
// monotonically non-decreasing and mutated only by the session's answer
// submission step, which keeps scoring testable without the timer.
type Tracker struct {
	score          int
	reward         int
	answered       int
	correctAnswers int
}

// NewTracker creates a tracker awarding reward points per correct answer.
func NewTracker(reward int) *Tracker {
	return &Tracker{reward: reward}
}

// RecordAnswer registers one answer decision and returns the points earned.
func (t *Tracker) RecordAnswer(correct bool) int {
	t.answered++
	if !correct {
		return 0
	}
	t.correctAnswers++
	t.score += t.reward
	return t.reward
}

// Progress is a read-only snapshot of the tracker counters.
type Progress struct {
	Score          int `json:"score"`
	Answered       int `json:"questions_answered"`
	CorrectAnswers int `json:"correct_answers"`
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() Progress {
	return Progress{
		Score:          t.score,
		Answered:       t.answered,
		CorrectAnswers: t.correctAnswers,
	}
}

func (t *Tracker) reset() {
	t.score = 0
	t.answered = 0
	t.correctAnswers = 0
}
