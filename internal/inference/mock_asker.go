package inference

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAsker is a mock implementation of Asker using testify/mock.
type MockAsker struct {
	mock.Mock
}

func (m *MockAsker) Ask(ctx context.Context, question, credential string) Outcome {
	args := m.Called(ctx, question, credential)
	return args.Get(0).(Outcome)
}
