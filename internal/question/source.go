package question

import (
	"context"
	"fmt"
)

// Source produces question sets on demand. The AI generator client implements
// it; the core never retries a failed call.
type Source interface {
	GenerateQuestions(ctx context.Context, topic string, count int, difficulty string) ([]Question, error)
}

// GenerationError reports an empty or failed question acquisition.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("question generation failed for topic %q", e.Topic)
	}
	return fmt.Sprintf("question generation failed for topic %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
