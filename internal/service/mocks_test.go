package service

import (
	"context"

	"birdcall-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockRecordingSource ---
type MockRecordingSource struct {
	mock.Mock
}

func (m *MockRecordingSource) Fetch(ctx context.Context, species *domain.Species, callType string, limit int) []domain.Recording {
	args := m.Called(ctx, species, callType, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Recording)
}

func (m *MockRecordingSource) Name() string {
	args := m.Called()
	return args.String(0)
}

// --- MockSessionStore ---
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, session *domain.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, questionID string) (*domain.QuizSession, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizSession), args.Error(1)
}

func speciesNamed(name string) interface{} {
	return mock.MatchedBy(func(sp *domain.Species) bool { return sp != nil && sp.LocalName == name })
}
