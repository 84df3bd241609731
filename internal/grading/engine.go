// Package grading contains the scoring engine: the free-text strategy graded
// through the oracle with a deterministic fallback, and the purely arithmetic
// multiple-choice strategy. Both are reproducible regardless of oracle health.
package grading

import (
	"context"

	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

// Oracle is the slice of the grading-oracle client the engine needs.
type Oracle interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts oracle.Options) (string, error)
}

type Engine struct {
	oracle Oracle
}

func NewEngine(o Oracle) *Engine {
	return &Engine{oracle: o}
}
