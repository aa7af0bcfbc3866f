package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesAllTopicSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe(TopicPayments)
	ch2, cleanup2 := hub.Subscribe(TopicPayments)
	defer cleanup1()
	defer cleanup2()

	hub.Publish(Event{Topic: TopicPayments, Event: "payment_created"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "payment_created", ev.Event)
		default:
			t.Fatal("expected event on subscriber channel")
		}
	}
}

func TestHubPublishOtherTopicNotDelivered(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicEmployees)
	defer cleanup()

	hub.Publish(Event{Topic: TopicDiscounts, Event: "discount_created"})

	select {
	case <-ch:
		t.Fatal("employee subscriber must not receive discount events")
	default:
	}
}

func TestHubCleanupRemovesOnlyOneSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe(TopicDashboard)
	ch2, cleanup2 := hub.Subscribe(TopicDashboard)
	defer cleanup2()

	require.Equal(t, 2, hub.SubscriberCount(TopicDashboard))

	cleanup1()
	assert.Equal(t, 1, hub.SubscriberCount(TopicDashboard))

	hub.Publish(Event{Topic: TopicDashboard, Event: "changed"})
	select {
	case ev := <-ch2:
		assert.Equal(t, "changed", ev.Event)
	default:
		t.Fatal("remaining subscriber should still receive events")
	}
}

func TestHubCleanupIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(TopicAdvances)
	cleanup()
	assert.NotPanics(t, cleanup)
	assert.Equal(t, 0, hub.SubscriberCount(TopicAdvances))
}

func TestHubPublishSkipsFullSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(TopicPayments)
	defer cleanup()

	// Channel capacity is 16; publishing past it must drop, not block.
	for i := 0; i < 100; i++ {
		hub.Publish(Event{Topic: TopicPayments, Event: "burst"})
	}
}

func TestHubTotalSubscribers(t *testing.T) {
	hub := NewHub()

	_, c1 := hub.Subscribe(TopicPayments)
	_, c2 := hub.Subscribe(TopicEmployees)
	defer c1()
	defer c2()

	assert.Equal(t, 2, hub.TotalSubscribers())
}
