package ai

import (
	"context"
	"errors"
)

// Client is a single-turn text generation client. Implementations send one
// user-role message and return the trimmed text result; an empty result is
// valid and not an error.
type Client interface {
	Generate(ctx context.Context, instruction string, temperature float32) (string, error)
}

// ErrUpstream marks transport- or service-level failures of the generation
// API (timeouts, auth, quota, malformed responses).
var ErrUpstream = errors.New("upstream generation failed")

func IsUpstream(err error) bool { return errors.Is(err, ErrUpstream) }
