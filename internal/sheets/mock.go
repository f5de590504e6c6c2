package sheets

import (
	"context"
	"sync"
)

// ReportWriter is the export contract the CLI depends on.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, report *Report) error
	LastReport     *Report
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, report *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = report

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.LastReport = nil
}

var _ ReportWriter = (*MockWriter)(nil)
var _ ReportWriter = (*Writer)(nil)
