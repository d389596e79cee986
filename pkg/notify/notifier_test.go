package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	n := New()
	a, cancelA := n.Subscribe()
	b, cancelB := n.Subscribe()
	defer cancelA()
	defer cancelB()

	n.Publish("mealCreated")

	assert.Equal(t, "mealCreated", <-a)
	assert.Equal(t, "mealCreated", <-b)
}

func TestCancelStopsDelivery(t *testing.T) {
	n := New()
	ch, cancel := n.Subscribe()
	cancel()

	// Publishing after cancel must not panic; the channel is closed.
	n.Publish("mealCreated")

	_, open := <-ch
	assert.False(t, open)

	// Double cancel is safe.
	cancel()
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	n := New()
	_, cancel := n.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*3; i++ {
			n.Publish("ingredientUpdated")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "publish blocked on a full subscriber")
	}
}
