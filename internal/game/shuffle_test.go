package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	first := NewNormalizer(rand.NewSource(99)).Shuffle(fixtureQuestions())
	second := NewNormalizer(rand.NewSource(99)).Shuffle(fixtureQuestions())

	assert.Equal(t, first, second)
}

func TestShufflePreservesQuestionContent(t *testing.T) {
	original := fixtureQuestions()
	shuffled := NewNormalizer(rand.NewSource(3)).Shuffle(original)

	assert.Len(t, shuffled, len(original))

	byPrompt := make(map[string]question.Question, len(original))
	for _, q := range original {
		byPrompt[q.Prompt] = q
	}

	for _, q := range shuffled {
		src, ok := byPrompt[q.Prompt]
		assert.True(t, ok, "unknown prompt %q", q.Prompt)
		assert.Equal(t, src.Answer, q.Answer)
		assert.Equal(t, src.OriginalIndex, q.OriginalIndex)
		assert.ElementsMatch(t, src.Options, q.Options)
		assert.Contains(t, q.Options, q.Answer)
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	original := fixtureQuestions()
	NewNormalizer(rand.NewSource(3)).Shuffle(original)

	assert.Equal(t, fixtureQuestions(), original)
}

func TestNilSourceGetsDefaultSeed(t *testing.T) {
	n := NewNormalizer(nil)
	assert.NotNil(t, n.random())
	assert.Len(t, n.Shuffle(fixtureQuestions()), 5)
}
