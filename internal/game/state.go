package game

import (
	"time"

	"github.com/google/uuid"
)

// State is the session lifecycle phase.
type State string

const (
	StateLoading State = "loading"
	StatePlaying State = "playing"
	StateSummary State = "summary"
	StateError   State = "error"
)

// Game modes. The mode travels into challenge tokens as the type tag.
const (
	ModeClassic = "classic"
	ModeAI      = "ai"
)

// Config carries session gameplay parameters.
type Config struct {
	QuestionCount int
	TimerSeconds  int
	Reward        int
	BoostSeconds  int
	TickInterval  time.Duration
}

// DefaultConfig returns production gameplay defaults.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 5,
		TimerSeconds:  60,
		Reward:        100,
		BoostSeconds:  15,
		TickInterval:  time.Second,
	}
}

// QuestionView is the client-facing shape of the active question. The answer
// never leaves the server.
type QuestionView struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	HiddenOptions []string `json:"hidden_options,omitempty"`
}

// Snapshot is a read-only view of session state for UI consumers.
type Snapshot struct {
	ID              uuid.UUID     `json:"id"`
	State           State         `json:"state"`
	Mode            string        `json:"mode"`
	Topic           string        `json:"topic,omitempty"`
	CurrentIndex    int           `json:"current_index"`
	QuestionCount   int           `json:"question_count"`
	TimeRemaining   int           `json:"time_remaining_seconds"`
	FiftyFiftyUsed  bool          `json:"fifty_fifty_used"`
	TimeBoostUsed   bool          `json:"time_boost_used"`
	Progress        Progress      `json:"progress"`
	CurrentQuestion *QuestionView `json:"current_question,omitempty"`
	Error           string        `json:"error,omitempty"`
}

// Result summarizes a finished session for leaderboard recording.
type Result struct {
	SessionID     uuid.UUID
	PlayerName    string
	Mode          string
	Topic         string
	Score         int
	CorrectCount  int
	QuestionCount int
}
