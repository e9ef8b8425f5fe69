package llm

import (
	"context"
	"strings"
)

type Provider interface {
	// StreamAnswer returns a stream of text chunks (incremental).
	StreamAnswer(ctx context.Context, prompt string) (chunks <-chan string, errs <-chan error)
	Close() error
}

// Collect drains a streamed answer into a single string. It returns whatever
// text arrived before the first error, together with that error.
func Collect(ctx context.Context, p Provider, prompt string) (string, error) {
	chunks, errs := p.StreamAnswer(ctx, prompt)

	var b strings.Builder
	for chunk := range chunks {
		b.WriteString(chunk)
	}
	if err := <-errs; err != nil {
		return b.String(), err
	}
	return b.String(), nil
}
