package local

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubSubBasic(t *testing.T) {
	ps := NewPubSub(16)
	ctx := context.Background()

	ch, cancel, err := ps.Subscribe(ctx, "game:state")
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, ps.Publish(ctx, "game:state", `{"version":1}`))

	select {
	case msg := <-ch:
		assert.Equal(t, "game:state", msg.Channel)
		assert.Equal(t, `{"version":1}`, msg.Payload)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func TestPubSubMultipleChannels(t *testing.T) {
	ps := NewPubSub(16)
	ctx := context.Background()

	ch, cancel, err := ps.Subscribe(ctx, "game:state", "game:event")
	require.NoError(t, err)
	defer cancel()

	_ = ps.Publish(ctx, "game:event", "e")
	_ = ps.Publish(ctx, "game:state", "s")
	_ = ps.Publish(ctx, "other", "x")

	got := []string{(<-ch).Channel, (<-ch).Channel}
	assert.Equal(t, []string{"game:event", "game:state"}, got)
	select {
	case msg := <-ch:
		t.Fatalf("unexpected message on %s", msg.Channel)
	default:
	}
}

func TestPubSubUnsubscribe(t *testing.T) {
	ps := NewPubSub(16)
	ctx := context.Background()

	ch, cancel, err := ps.Subscribe(ctx, "ch")
	require.NoError(t, err)

	cancel()
	cancel() // second cancel is a no-op

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("channel not closed after cancel")
	}

	assert.NoError(t, ps.Publish(ctx, "ch", "msg"))
	ps.mu.RLock()
	assert.Empty(t, ps.subscribers)
	ps.mu.RUnlock()
}

func TestPubSubMultipleSubscribers(t *testing.T) {
	ps := NewPubSub(16)
	ctx := context.Background()

	ch1, cancel1, _ := ps.Subscribe(ctx, "broadcast")
	ch2, cancel2, _ := ps.Subscribe(ctx, "broadcast")
	defer cancel1()
	defer cancel2()

	require.NoError(t, ps.Publish(ctx, "broadcast", "world"))

	for _, ch := range []<-chan *LocalMessage{ch1, ch2} {
		select {
		case msg := <-ch:
			assert.Equal(t, "world", msg.Payload)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("subscriber did not receive message")
		}
	}
}

func TestPubSubSlowSubscriberDrops(t *testing.T) {
	ps := NewPubSub(2)
	ctx := context.Background()

	ch, cancel, _ := ps.Subscribe(ctx, "c")
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, ps.Publish(ctx, "c", fmt.Sprint(i)))
	}
	assert.Len(t, ch, 2)
	assert.Equal(t, "0", (<-ch).Payload)
}
