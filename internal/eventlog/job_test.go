package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCleanupJob_Process(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	job := NewCleanupJob(service, 10)
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", mock.Anything, 10).Return(int64(100), nil)

	err := job.Process(ctx)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCleanupJob_StopBeforeFirstTick(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	job := NewCleanupJob(service, DefaultRetentionDays)

	job.Start()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup job did not stop promptly")
	}

	// No tick fired, so the repository must not have been touched
	mockRepo.AssertNotCalled(t, "CleanupOldEvents", mock.Anything, mock.Anything)
}
