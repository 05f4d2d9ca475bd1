package repository

import (
	"context"
)

// AIRepository is one inference provider in the extraction fallback chain.
// Implementations differ only in request construction; they all take the
// same prompt and return the model's raw text output.
type AIRepository interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
