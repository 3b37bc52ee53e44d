package mocks

import (
	"context"
)

// MockScorer is a mock implementation of service.Scorer
type MockScorer struct {
	ScoreValue float64
	Err        error
	Calls      int
	LastCode   []byte
}

func NewMockScorer(score float64) *MockScorer {
	return &MockScorer{ScoreValue: score}
}

func (m *MockScorer) Score(ctx context.Context, code []byte) (float64, error) {
	m.Calls++
	m.LastCode = code
	if m.Err != nil {
		return 0, m.Err
	}
	return m.ScoreValue, nil
}
