package event

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// flakyBus fails the first N publishes, then succeeds.
type flakyBus struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (b *flakyBus) Publish(_ context.Context, _ Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.calls <= b.failures {
		return errors.New("subscriber down")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestResilientPublisher_PublishNeverFailsCaller(t *testing.T) {
	inner := &flakyBus{failures: 1}
	p := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     5 * time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "deadletter.jsonl"),
	})

	err := p.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, domain.RankE))
	require.NoError(t, err)

	// The retry loop runs detached; wait for the second attempt
	assert.Eventually(t, func() bool {
		return inner.callCount() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestResilientPublisher_SuccessSkipsRetry(t *testing.T) {
	inner := &flakyBus{}
	p := NewResilientPublisher(inner, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     5 * time.Millisecond,
		DeadLetterPath: filepath.Join(t.TempDir(), "deadletter.jsonl"),
	})

	require.NoError(t, p.Publish(context.Background(), NewLevelUpEvent("user-1", 1, 2, domain.RankE)))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, inner.callCount())
}
