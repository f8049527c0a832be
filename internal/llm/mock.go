package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MockResponse is one canned reply. Content is returned without schema
// validation so tests can feed consumers out-of-range values.
type MockResponse struct {
	Content   json.RawMessage
	Usage     Usage
	Truncated bool // reply with *ErrMaxTokensExceeded carrying Content
	Err       error
}

// MockProvider replays canned responses in order and records every
// request. An exhausted queue answers with *ErrProviderUnavailable, the
// same failure a scorer sees when the real service is down.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	requests []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.queue) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]

	switch {
	case next.Err != nil:
		return nil, next.Err
	case next.Truncated:
		return nil, &ErrMaxTokensExceeded{Content: next.Content}
	}

	usage := next.Usage
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    next.Content,
		Usage:      usage,
		Model:      ProviderMock,
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return ProviderMock
}

// Requests returns the requests received so far, oldest first.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
