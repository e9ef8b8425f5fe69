package llm

import (
	"context"
	"sync"
)

// Mock is a scripted Provider for tests. Each StreamAnswer call emits the
// next queued response as a single chunk; once the queue runs out the last
// response repeats.
type Mock struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	calls     []string
}

func NewMock(responses ...string) *Mock {
	return &Mock{Responses: responses}
}

func (m *Mock) Close() error { return nil }

// Calls returns the prompts received so far.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	m.mu.Lock()
	m.calls = append(m.calls, prompt)

	var resp string
	if len(m.Responses) > 0 {
		resp = m.Responses[0]
		if len(m.Responses) > 1 {
			m.Responses = m.Responses[1:]
		}
	}
	err := m.Err
	m.mu.Unlock()

	out := make(chan string, 1)
	errs := make(chan error, 1)
	if err != nil {
		errs <- err
	} else if resp != "" {
		out <- resp
	}
	close(out)
	close(errs)
	return out, errs
}
