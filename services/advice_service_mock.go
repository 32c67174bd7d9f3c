package services

import (
	"context"
	"sync"
)

// MockAdviceService is a mock implementation of AdviceService for testing
type MockAdviceService struct {
	mu       sync.Mutex
	response string
	err      error
	queries  []string
}

// NewMockAdviceService creates a mock advice service that returns the
// given canned response.
func NewMockAdviceService(response string) *MockAdviceService {
	return &MockAdviceService{response: response}
}

// SetAsMockForTesting sets this mock as the global advice service instance for testing
func (m *MockAdviceService) SetAsMockForTesting() {
	SetAdviceService(m)
}

// FailWith makes subsequent calls return the given error.
func (m *MockAdviceService) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GenerateAdvice records the query and returns the canned response or
// the configured error.
func (m *MockAdviceService) GenerateAdvice(ctx context.Context, query string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queries = append(m.queries, query)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// Queries returns the queries received so far.
func (m *MockAdviceService) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}
