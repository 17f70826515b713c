package challenge

import (
	"github.com/sjrf7/crypto-trivia/internal/question"
)

// Kind tags the decoded challenge variant.
type Kind string

const (
	// KindClassic references bank questions by index.
	KindClassic Kind = "classic"
	// KindAI references a challenge store entry by ID.
	KindAI Kind = "ai"
	// KindLegacy is the pre-type classic layout with no leading tag. It
	// resolves questions exactly like classic.
	KindLegacy Kind = "legacy"
)

// Payload is the AI question set kept in the challenge store; it is too
// large to travel inside the token itself.
type Payload struct {
	Topic     string              `json:"topic"`
	Questions []question.Question `json:"questions"`
}

// Challenge is the validated result of decoding a token. Every field is
// fully resolved: Questions is ready to seed a replay session.
type Challenge struct {
	Kind           Kind                `json:"kind"`
	Topic          string              `json:"topic,omitempty"`
	Questions      []question.Question `json:"questions"`
	Refs           []int               `json:"refs,omitempty"`
	StoreID        string              `json:"store_id,omitempty"`
	ScoreToBeat    int                 `json:"score_to_beat"`
	Wager          float64             `json:"wager"`
	ChallengerName string              `json:"challenger_name"`
	Message        string              `json:"message,omitempty"`
}

// Invite carries the challenger-supplied metadata for encoding.
type Invite struct {
	ChallengerName string
	Wager          float64
	Message        string
}
