package game

import (
	"math/rand"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

// PowerUpKind identifies a single-use session modifier.
type PowerUpKind string

const (
	PowerUpFiftyFifty PowerUpKind = "fifty_fifty"
	PowerUpTimeBoost  PowerUpKind = "time_boost"
)

// powerUps tracks single-use state. Repeated activation after first use is a
// guarded no-op, never an error.
type powerUps struct {
	fiftyFiftyUsed bool
	timeBoostUsed  bool
}

func (p *powerUps) reset() {
	p.fiftyFiftyUsed = false
	p.timeBoostUsed = false
}

// applyFiftyFifty blanks all incorrect options except one randomly kept
// survivor, recording the removed text in HiddenOptions. The question is
// mutated in place; blanked slots keep their position so option ordering
// stays stable for the UI.
func applyFiftyFifty(q *question.Question, rng *rand.Rand) {
	var incorrect []int
	for i, opt := range q.Options {
		if opt == "" || opt == q.Answer {
			continue
		}
		incorrect = append(incorrect, i)
	}
	if len(incorrect) <= 1 {
		return
	}

	keep := incorrect[rng.Intn(len(incorrect))]
	for _, i := range incorrect {
		if i == keep {
			continue
		}
		q.HiddenOptions = append(q.HiddenOptions, q.Options[i])
		q.Options[i] = ""
	}
}
