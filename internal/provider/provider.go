// Package provider defines the capability-provider contracts the photo
// pipeline depends on: image-text alignment scoring, captioning, and text
// enrichment. Concrete bindings (Gemini) live alongside the interfaces;
// the pipeline only ever sees these narrow contracts.
package provider

import (
	"context"
	"fmt"
	"image"
)

// PromptScore is one (prompt, probability) pair of an alignment distribution.
// The provider contract guarantees a proper probability distribution over the
// prompt set it was given, in the order it was given.
type PromptScore struct {
	Prompt      string
	Probability float64
}

// AlignmentScorer scores an image against a set of descriptive prompts.
type AlignmentScorer interface {
	Score(ctx context.Context, img image.Image, prompts []string) ([]PromptScore, error)
}

// Captioner generates a free-text description of an image.
type Captioner interface {
	Caption(ctx context.Context, img image.Image) (string, error)
}

// Enricher rewrites or expands text according to an instruction.
// Callers must treat failure as recoverable and fall back.
type Enricher interface {
	Enrich(ctx context.Context, instruction, text string) (string, error)
}

// Error wraps a failed capability-provider call with the operation that failed.
type Error struct {
	Op  string // "score", "caption", "enrich"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
