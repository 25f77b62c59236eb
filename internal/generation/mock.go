package generation

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator is an in-memory ContentGenerator for tests and local
// development. It records every dossier it was asked to expand.
type MockGenerator struct {
	mu       sync.Mutex
	prompts  []string
	Response string
	Err      error
}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (m *MockGenerator) GenerateRemedialContent(ctx context.Context, promptDossier string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, promptDossier)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("Mock remedial content for dossier of %d bytes.", len(promptDossier)), nil
}

func (m *MockGenerator) ModelID() string {
	return "mock"
}

// CallCount reports how many times the generator was invoked.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompts returns a copy of the recorded dossiers.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
