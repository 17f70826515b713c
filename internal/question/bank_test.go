package question

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassicBankQuestionsAreValid(t *testing.T) {
	bank := ClassicBank()
	assert.Equal(t, 20, bank.Len())

	for i := 0; i < bank.Len(); i++ {
		q, err := bank.ByIndex(i)
		assert.NoError(t, err)
		assert.True(t, q.Valid(), "question %d (%q) is invalid", i, q.Prompt)
		assert.Equal(t, i, q.OriginalIndex)
	}
}

func TestByIndexOutOfRange(t *testing.T) {
	bank := ClassicBank()

	_, err := bank.ByIndex(-1)
	assert.Error(t, err)
	_, err = bank.ByIndex(bank.Len())
	assert.Error(t, err)
}

func TestByIndexReturnsCopy(t *testing.T) {
	bank := ClassicBank()
	q, err := bank.ByIndex(0)
	assert.NoError(t, err)

	q.Options[0] = "mutated"
	fresh, err := bank.ByIndex(0)
	assert.NoError(t, err)
	assert.NotEqual(t, "mutated", fresh.Options[0])
}

func TestSelectResolvesInOrder(t *testing.T) {
	bank := ClassicBank()
	questions, err := bank.Select([]int{4, 0, 2})
	assert.NoError(t, err)
	assert.Len(t, questions, 3)
	assert.Equal(t, 4, questions[0].OriginalIndex)
	assert.Equal(t, 0, questions[1].OriginalIndex)
	assert.Equal(t, 2, questions[2].OriginalIndex)
}

func TestSelectFailsOnAnyBadIndex(t *testing.T) {
	bank := ClassicBank()
	_, err := bank.Select([]int{0, 99})
	assert.Error(t, err)
}

func TestDrawPicksDistinctQuestions(t *testing.T) {
	bank := ClassicBank()
	rng := rand.New(rand.NewSource(5))

	questions, err := bank.Draw(rng, 5)
	assert.NoError(t, err)
	assert.Len(t, questions, 5)

	seen := make(map[int]bool)
	for _, q := range questions {
		assert.False(t, seen[q.OriginalIndex], "duplicate question %d", q.OriginalIndex)
		seen[q.OriginalIndex] = true
	}
}

func TestDrawRejectsBadCounts(t *testing.T) {
	bank := ClassicBank()
	rng := rand.New(rand.NewSource(5))

	_, err := bank.Draw(rng, 0)
	assert.Error(t, err)
	_, err = bank.Draw(rng, bank.Len()+1)
	assert.Error(t, err)
}

func TestQuestionValid(t *testing.T) {
	valid := Question{
		Prompt:  "p",
		Answer:  "a",
		Options: []string{"a", "b", "c", "d"},
	}
	assert.True(t, valid.Valid())

	missingAnswer := valid
	missingAnswer.Options = []string{"x", "b", "c", "d"}
	assert.False(t, missingAnswer.Valid())

	// A case-only match is no match: scoring compares exact text, so such a
	// question could never be answered correctly.
	caseMismatch := valid
	caseMismatch.Answer = "A"
	assert.False(t, caseMismatch.Valid())

	duplicate := valid
	duplicate.Options = []string{"a", "a", "c", "d"}
	assert.False(t, duplicate.Valid())

	short := valid
	short.Options = []string{"a", "b", "c"}
	assert.False(t, short.Valid())
}

func TestVisibleOptions(t *testing.T) {
	q := Question{
		Answer:  "a",
		Options: []string{"a", "", "c", ""},
	}
	assert.Equal(t, []string{"a", "c"}, q.VisibleOptions())
	assert.True(t, q.HasVisibleOption("c"))
	assert.False(t, q.HasVisibleOption("b"))
	assert.False(t, q.HasVisibleOption(""))
}
