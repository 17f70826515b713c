package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

// Config holds connection details for the AI generator service.
type Config struct {
	GeneratorURL string
	GeneratorKey string
	Timeout      time.Duration
}

// Generator implements question.Source against the external AI service.
type Generator struct {
	httpClient  *http.Client
	config      Config
	logger      zerolog.Logger
	generateURL string
}

func NewGenerator(cfg Config, logger zerolog.Logger) *Generator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Second
	}
	base := strings.TrimSuffix(cfg.GeneratorURL, "/")

	return &Generator{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config:      cfg,
		logger:      logger.With().Str("component", "ai_generator").Logger(),
		generateURL: base + "/generate",
	}
}

// GenerateQuestions requests a fresh question set for a topic. The call is
// request/response; retry policy belongs to the caller, not here.
func (g *Generator) GenerateQuestions(ctx context.Context, topic string, count int, difficulty string) ([]question.Question, error) {
	if g.config.GeneratorURL == "" {
		return nil, &question.GenerationError{Topic: topic, Err: fmt.Errorf("generator endpoint not configured")}
	}
	if count < 1 || count > 20 {
		return nil, &question.GenerationError{Topic: topic, Err: fmt.Errorf("count %d outside [1,20]", count)}
	}

	payload := generatorRequest{
		Topic:      topic,
		Count:      count,
		Difficulty: difficulty,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.generateURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.config.GeneratorKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.config.GeneratorKey)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, &question.GenerationError{Topic: topic, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &question.GenerationError{Topic: topic, Err: fmt.Errorf("generator returned status %d", resp.StatusCode)}
	}

	var genResp generatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, &question.GenerationError{Topic: topic, Err: fmt.Errorf("decode generator payload: %w", err)}
	}

	questions := make([]question.Question, 0, len(genResp.Questions))
	for _, q := range genResp.Questions {
		normalized, ok := normalizeAIQuestion(q)
		if !ok {
			g.logger.Warn().Str("prompt", q.Question).Msg("dropping malformed generated question")
			continue
		}
		questions = append(questions, normalized)
	}

	if len(questions) == 0 {
		return nil, &question.GenerationError{Topic: topic, Err: fmt.Errorf("generator returned empty question set")}
	}

	return questions, nil
}

func normalizeAIQuestion(q aiQuestion) (question.Question, bool) {
	normalized := question.Question{
		Prompt:        strings.TrimSpace(q.Question),
		Answer:        strings.TrimSpace(q.Answer),
		Options:       make([]string, 0, len(q.Options)),
		OriginalIndex: -1,
	}
	for _, opt := range q.Options {
		normalized.Options = append(normalized.Options, strings.TrimSpace(opt))
	}
	// Generators sometimes case the answer differently from the matching
	// option. Scoring compares exact text, so canonicalize the answer to the
	// option as written; with no match at all the question is invalid.
	for _, opt := range normalized.Options {
		if strings.EqualFold(opt, normalized.Answer) {
			normalized.Answer = opt
			break
		}
	}
	if !normalized.Valid() {
		return question.Question{}, false
	}
	return normalized, true
}

type generatorRequest struct {
	Topic      string `json:"topic"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
}

type aiQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
}

type generatorResponse struct {
	Questions []aiQuestion `json:"questions"`
}
