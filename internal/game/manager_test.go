package game

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

func newTestManager(onComplete func(Result)) *Manager {
	cfg := DefaultConfig()
	cfg.TickInterval = time.Hour
	return NewManager(cfg, nil, question.ClassicBank(), onComplete, zerolog.Nop())
}

func TestManagerCreateAndLookup(t *testing.T) {
	m := newTestManager(nil)

	session, err := m.CreateSession(context.Background(), ModeClassic, "", "alice")
	assert.NoError(t, err)
	t.Cleanup(func() { m.Remove(session.ID()) })

	snap := session.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 5, snap.QuestionCount)

	found, ok := m.Get(session.ID())
	assert.True(t, ok)
	assert.Same(t, session, found)
}

func TestManagerRegistersFailedSessionsForRestart(t *testing.T) {
	m := newTestManager(nil)

	// AI mode with no source configured fails acquisition.
	session, err := m.CreateSession(context.Background(), ModeAI, "defi", "alice")
	assert.Error(t, err)
	assert.NotNil(t, session)
	t.Cleanup(func() { m.Remove(session.ID()) })

	found, ok := m.Get(session.ID())
	assert.True(t, ok)
	assert.Equal(t, StateError, found.Snapshot().State)
}

func TestManagerReplaySessionSizesToQuestionSet(t *testing.T) {
	m := newTestManager(nil)

	questions := fixtureQuestions()[:3]
	session, err := m.CreateReplaySession(context.Background(), ModeClassic, "", questions, "bob")
	assert.NoError(t, err)
	t.Cleanup(func() { m.Remove(session.ID()) })

	snap := session.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 3, snap.QuestionCount)
}

func TestManagerRemoveClosesSession(t *testing.T) {
	m := newTestManager(nil)

	session, err := m.CreateSession(context.Background(), ModeClassic, "", "alice")
	assert.NoError(t, err)

	m.Remove(session.ID())
	_, ok := m.Get(session.ID())
	assert.False(t, ok)
}

func TestManagerForwardsCompletionResults(t *testing.T) {
	results := make(chan Result, 1)
	m := newTestManager(func(r Result) { results <- r })

	session, err := m.CreateReplaySession(context.Background(), ModeClassic, "", fixtureQuestions(), "carol")
	assert.NoError(t, err)
	t.Cleanup(func() { m.Remove(session.ID()) })

	answers := answersByPrompt(fixtureQuestions())
	for i := 0; i < 5; i++ {
		snap := session.Snapshot()
		session.SubmitAnswer(answers[snap.CurrentQuestion.Prompt])
	}

	select {
	case r := <-results:
		assert.Equal(t, "carol", r.PlayerName)
		assert.Equal(t, 500, r.Score)
		assert.Equal(t, 5, r.CorrectCount)
		assert.Equal(t, 5, r.QuestionCount)
	case <-time.After(time.Second):
		t.Fatal("completion result never delivered")
	}
}
