package game

import (
	"math/rand"
	"time"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

// Normalizer shuffles a question set once per session: question order and the
// option order inside each question. The random source is injectable so tests
// can pin a seed; production uses a time-seeded source.
type Normalizer struct {
	rng *rand.Rand
}

// NewNormalizer builds a normalizer from a rand source. A nil source selects
// a time-seeded default.
func NewNormalizer(src rand.Source) *Normalizer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Normalizer{rng: rand.New(src)}
}

// Shuffle returns a shuffled copy of the question set. Each question keeps
// its OriginalIndex so classic challenges can still reference bank positions.
func (n *Normalizer) Shuffle(questions []question.Question) []question.Question {
	shuffled := make([]question.Question, len(questions))
	for i, idx := range n.rng.Perm(len(questions)) {
		q := questions[idx]
		q.Options = n.shuffleOptions(q.Options)
		shuffled[i] = q
	}
	return shuffled
}

func (n *Normalizer) shuffleOptions(options []string) []string {
	out := make([]string, len(options))
	for i, idx := range n.rng.Perm(len(options)) {
		out[i] = options[idx]
	}
	return out
}

// rng exposes the underlying generator for components that need additional
// draws tied to the same seed (bank selection, fifty-fifty keep choice).
func (n *Normalizer) random() *rand.Rand {
	return n.rng
}
