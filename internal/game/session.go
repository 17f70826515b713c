package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

// Session is one play-through from question acquisition to summary. All
// mutations go through its methods under a single mutex; the clock goroutine
// is the only asynchronous caller.
type Session struct {
	id         uuid.UUID
	cfg        Config
	mode       string
	topic      string
	playerName string
	source     question.Source
	bank       *question.Bank
	normalizer *Normalizer
	preset     []question.Question
	onComplete func(Result)
	logger     zerolog.Logger

	mu            sync.Mutex
	state         State
	questions     []question.Question
	pristine      []question.Question
	currentIndex  int
	timeRemaining int
	tracker       *Tracker
	powerUps      powerUps
	clock         *Clock
	clockGen      int
	lastErr       error

	subscribers map[int]chan Snapshot
	nextSubID   int
}

// Option customizes session construction.
type Option func(*Session)

// WithPresetQuestions seeds the session with an already-resolved question
// set (challenge replays) instead of drawing from the bank or the source.
func WithPresetQuestions(questions []question.Question) Option {
	return func(s *Session) {
		s.preset = questions
	}
}

// WithCompletionHook registers a callback fired once when the session
// reaches Summary.
func WithCompletionHook(fn func(Result)) Option {
	return func(s *Session) {
		s.onComplete = fn
	}
}

// WithPlayerName attaches a display name used for leaderboard recording.
func WithPlayerName(name string) Option {
	return func(s *Session) {
		s.playerName = name
	}
}

// NewSession builds a session in Loading state. mode selects the question
// origin: ModeClassic draws from the bank, ModeAI asks the source for the
// given topic.
func NewSession(cfg Config, mode, topic string, source question.Source, bank *question.Bank, normalizer *Normalizer, logger zerolog.Logger, opts ...Option) *Session {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	id := uuid.New()
	s := &Session{
		id:          id,
		cfg:         cfg,
		mode:        mode,
		topic:       topic,
		source:      source,
		bank:        bank,
		normalizer:  normalizer,
		state:       StateLoading,
		tracker:     NewTracker(cfg.Reward),
		logger:      logger.With().Str("component", "session").Str("session_id", id.String()).Logger(),
		subscribers: make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start acquires the question set and transitions Loading -> Playing. On
// acquisition failure the session lands in Error until Restart; the failure
// is surfaced to the caller and never retried here.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	// Acquisition happens outside the lock; the source may block on network.
	questions, err := s.acquire(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoading {
		// Restarted or torn down while acquiring.
		return nil
	}
	if err != nil {
		s.state = StateError
		s.lastErr = err
		s.logger.Error().Err(err).Msg("question acquisition failed")
		s.notifyLocked()
		return fmt.Errorf("acquire questions: %w", err)
	}

	s.questions = s.normalizer.Shuffle(questions)
	s.pristine = copyQuestions(s.questions)
	s.currentIndex = 0
	s.timeRemaining = s.cfg.TimerSeconds
	s.state = StatePlaying
	s.startClockLocked()
	s.logger.Info().Int("questions", len(s.questions)).Str("mode", s.mode).Msg("session started")
	s.notifyLocked()
	return nil
}

func (s *Session) acquire(ctx context.Context) ([]question.Question, error) {
	if len(s.preset) > 0 {
		return s.preset, nil
	}
	if s.mode == ModeClassic {
		return s.bank.Draw(s.normalizer.random(), s.cfg.QuestionCount)
	}
	if s.source == nil {
		return nil, &question.GenerationError{Topic: s.topic, Err: fmt.Errorf("no question source configured")}
	}
	questions, err := s.source.GenerateQuestions(ctx, s.topic, s.cfg.QuestionCount, question.DifficultyMedium)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &question.GenerationError{Topic: s.topic, Err: fmt.Errorf("empty question set")}
	}
	return questions, nil
}

// AnswerOutcome reports what an answer submission did. Accepted is false for
// guarded no-ops (wrong state, blanked or unknown option).
type AnswerOutcome struct {
	Accepted bool     `json:"accepted"`
	Correct  bool     `json:"correct"`
	Done     bool     `json:"done"`
	Progress Progress `json:"progress"`
}

// SubmitAnswer scores the chosen option against the active question. At most
// one scored decision is accepted per question index: scoring advances the
// index (or ends the session), so a repeat submission can never double-count.
func (s *Session) SubmitAnswer(option string) AnswerOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return AnswerOutcome{Progress: s.tracker.Snapshot()}
	}

	q := s.questions[s.currentIndex]
	if !q.HasVisibleOption(option) {
		return AnswerOutcome{Progress: s.tracker.Snapshot()}
	}

	correct := option == q.Answer
	s.tracker.RecordAnswer(correct)

	done := s.currentIndex == len(s.questions)-1
	if done {
		s.finishLocked()
	} else {
		s.currentIndex++
	}
	s.notifyLocked()

	return AnswerOutcome{
		Accepted: true,
		Correct:  correct,
		Done:     done,
		Progress: s.tracker.Snapshot(),
	}
}

// UsePowerUp activates a single-use modifier. Reuse, unknown kinds, and
// calls outside Playing are guarded no-ops; the return value reports whether
// the power-up applied.
func (s *Session) UsePowerUp(kind PowerUpKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return false
	}

	switch kind {
	case PowerUpFiftyFifty:
		if s.powerUps.fiftyFiftyUsed {
			return false
		}
		applyFiftyFifty(&s.questions[s.currentIndex], s.normalizer.random())
		s.powerUps.fiftyFiftyUsed = true
	case PowerUpTimeBoost:
		if s.powerUps.timeBoostUsed {
			return false
		}
		s.timeRemaining += s.cfg.BoostSeconds
		s.powerUps.timeBoostUsed = true
	default:
		return false
	}
	s.notifyLocked()
	return true
}

// Restart clears all session-scoped state back to Loading and re-acquires a
// question set. The previous clock is invalidated before any field resets.
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()
	if s.clock != nil {
		s.clock.Stop()
		s.clock = nil
	}
	s.clockGen++
	s.state = StateLoading
	s.questions = nil
	s.pristine = nil
	s.currentIndex = 0
	s.timeRemaining = 0
	s.lastErr = nil
	s.tracker.reset()
	s.powerUps.reset()
	s.mu.Unlock()

	return s.Start(ctx)
}

// Close stops the clock and drops subscribers. Used on unmount so a dangling
// timer cannot mutate state after the player navigated away.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clock != nil {
		s.clock.Stop()
		s.clock = nil
	}
	s.clockGen++
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Snapshot returns a read-only view of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a snapshot stream fed on every state change (ticks
// included). The returned cancel func must be called when done.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Snapshot, 16)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			close(sub)
			delete(s.subscribers, id)
		}
	}
	return ch, cancel
}

func (s *Session) startClockLocked() {
	clock := newClock(s.cfg.TickInterval)
	s.clock = clock
	s.clockGen++
	gen := s.clockGen
	go clock.run(func() bool {
		return s.reduceTick(gen)
	})
}

// reduceTick applies one clock tick against current state. Stale generations
// (after restart/close) and non-Playing states are no-ops, which makes the
// zero-crossing transition idempotent even if a tick races the last answer.
func (s *Session) reduceTick(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.clockGen || s.state != StatePlaying {
		return false
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.finishLocked()
		s.notifyLocked()
		return false
	}
	s.notifyLocked()
	return true
}

// finishLocked transitions to Summary exactly once. Callers hold s.mu and
// guarantee state is Playing.
func (s *Session) finishLocked() {
	s.state = StateSummary
	if s.clock != nil {
		s.clock.Stop()
		s.clock = nil
	}
	s.clockGen++

	progress := s.tracker.Snapshot()
	s.logger.Info().
		Int("score", progress.Score).
		Int("answered", progress.Answered).
		Int("correct", progress.CorrectAnswers).
		Msg("session complete")

	if s.onComplete != nil {
		result := Result{
			SessionID:     s.id,
			PlayerName:    s.playerName,
			Mode:          s.mode,
			Topic:         s.topic,
			Score:         progress.Score,
			CorrectCount:  progress.CorrectAnswers,
			QuestionCount: len(s.questions),
		}
		go s.onComplete(result)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             s.id,
		State:          s.state,
		Mode:           s.mode,
		Topic:          s.topic,
		CurrentIndex:   s.currentIndex,
		QuestionCount:  len(s.questions),
		TimeRemaining:  s.timeRemaining,
		FiftyFiftyUsed: s.powerUps.fiftyFiftyUsed,
		TimeBoostUsed:  s.powerUps.timeBoostUsed,
		Progress:       s.tracker.Snapshot(),
	}
	if s.state == StatePlaying {
		q := s.questions[s.currentIndex]
		snap.CurrentQuestion = &QuestionView{
			Prompt:        q.Prompt,
			Options:       append([]string(nil), q.Options...),
			HiddenOptions: append([]string(nil), q.HiddenOptions...),
		}
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}

func (s *Session) notifyLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow consumer; drop the snapshot rather than block the session.
		}
	}
}

// ChallengeSeed captures the replay parameters a challenge codec needs:
// bank refs for classic games, the pristine (pre-power-up) question set for
// AI games, and the score to beat.
type ChallengeSeed struct {
	Mode      string
	Topic     string
	Score     int
	Refs      []int
	Questions []question.Question
}

// ChallengeSeed snapshots the session's shareable replay parameters.
func (s *Session) ChallengeSeed() ChallengeSeed {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]int, len(s.pristine))
	for i, q := range s.pristine {
		refs[i] = q.OriginalIndex
	}
	return ChallengeSeed{
		Mode:      s.mode,
		Topic:     s.topic,
		Score:     s.tracker.Snapshot().Score,
		Refs:      refs,
		Questions: copyQuestions(s.pristine),
	}
}

func copyQuestions(questions []question.Question) []question.Question {
	out := make([]question.Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		q.HiddenOptions = nil
		out[i] = q
	}
	return out
}
