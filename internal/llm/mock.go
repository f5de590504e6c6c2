package llm

import (
	"context"
	"sync"
)

// MockClient is a test double for the completion interface. It records
// calls so tests can assert the provider was, or was not, reached.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	prompts   []string
}

// NewMockClient creates a mock that returns the given responses in order,
// repeating the last one once exhausted.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// SetError makes every subsequent Complete call fail with err.
func (m *MockClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, _, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

// Calls returns how many times Complete was invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the most recent user prompt, or "".
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
