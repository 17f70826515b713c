package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

// Manager owns active sessions. There is no process-wide session state:
// every operation goes through an explicit session handle looked up here.
type Manager struct {
	cfg        Config
	source     question.Source
	bank       *question.Bank
	logger     zerolog.Logger
	onComplete func(Result)

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager(cfg Config, source question.Source, bank *question.Bank, onComplete func(Result), logger zerolog.Logger) *Manager {
	return &Manager{
		cfg:        cfg,
		source:     source,
		bank:       bank,
		logger:     logger.With().Str("component", "session_manager").Logger(),
		onComplete: onComplete,
		sessions:   make(map[uuid.UUID]*Session),
	}
}

// CreateSession builds, registers, and starts a session. The session is
// registered even when acquisition fails so the client can issue a restart
// against the same handle.
func (m *Manager) CreateSession(ctx context.Context, mode, topic, playerName string) (*Session, error) {
	session := NewSession(m.cfg, mode, topic, m.source, m.bank, NewNormalizer(nil), m.logger,
		WithPlayerName(playerName),
		WithCompletionHook(m.complete),
	)
	m.register(session)

	err := session.Start(ctx)
	if err != nil {
		sessionsFailed.WithLabelValues(mode).Inc()
		return session, err
	}
	sessionsStarted.WithLabelValues(mode).Inc()
	return session, nil
}

// CreateReplaySession starts a session over an already-resolved question set
// (a decoded challenge).
func (m *Manager) CreateReplaySession(ctx context.Context, mode, topic string, questions []question.Question, playerName string) (*Session, error) {
	cfg := m.cfg
	cfg.QuestionCount = len(questions)

	session := NewSession(cfg, mode, topic, m.source, m.bank, NewNormalizer(nil), m.logger,
		WithPlayerName(playerName),
		WithCompletionHook(m.complete),
		WithPresetQuestions(questions),
	)
	m.register(session)

	if err := session.Start(ctx); err != nil {
		sessionsFailed.WithLabelValues(mode).Inc()
		return session, err
	}
	sessionsStarted.WithLabelValues(mode).Inc()
	return session, nil
}

// Get looks up an active session.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Remove closes and unregisters a session, cancelling its clock.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		session.Close()
	}
}

func (m *Manager) register(session *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID()] = session
}

func (m *Manager) complete(result Result) {
	sessionsCompleted.WithLabelValues(result.Mode).Inc()
	if m.onComplete != nil {
		m.onComplete(result)
	}
}
