package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
	"github.com/JackRiiley/life-rpg-app/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	// The audit log listens to every event type on the bus
	for _, et := range domain.AllEventTypes {
		mockBus.On("Subscribe", event.Type(et), mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	hooks := NewTestHooks(svc)

	ctx := context.Background()
	evt := event.NewTaskCompletedEvent("user-1", "task-1", "Read a chapter", 25, 5)

	mockRepo.On("LogEvent", ctx, domain.EventTypeTaskCompleted, "user-1", evt.Version, evt.Payload).Return(nil)

	err := hooks.HandleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	hooks := NewTestHooks(svc)

	ctx := context.Background()
	evt := event.NewLevelUpEvent("user-1", 1, 2, domain.RankE)

	mockRepo.On("LogEvent", ctx, domain.EventTypeLevelUp, "user-1", evt.Version, evt.Payload).
		Return(errors.New("connection lost"))

	err := hooks.HandleEvent(ctx, evt)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_EventsForUser_ClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetEventsByUser", ctx, "user-1", DefaultHistoryLimit).Return([]Event{}, nil).Once()
	mockRepo.On("GetEventsByUser", ctx, "user-1", MaxHistoryLimit).Return([]Event{}, nil).Once()
	mockRepo.On("GetEventsByUser", ctx, "user-1", 10).Return([]Event{}, nil).Once()

	_, err := service.EventsForUser(ctx, "user-1", 0)
	assert.NoError(t, err)

	_, err = service.EventsForUser(ctx, "user-1", MaxHistoryLimit+500)
	assert.NoError(t, err)

	_, err = service.EventsForUser(ctx, "user-1", 10)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := service.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	mockRepo.AssertExpectations(t)
}
