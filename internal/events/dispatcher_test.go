package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventAgentDeleted, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.AgentID.String())
		return errors.New("webhook down")
	})
	d.Subscribe(EventAgentDeleted, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.AgentID.String())
		return nil
	})
	d.Subscribe(EventAgentUpdated, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventAgentDeleted, "9", Actor{UserID: "1"}, nil))
	require.Error(t, err)
	assert.Equal(t, []string{"first:9", "second:9"}, got)
}

func TestNewEventStampsIdentity(t *testing.T) {
	a := NewEvent(EventAgentRegistered, "1", Actor{}, nil)
	b := NewEvent(EventAgentRegistered, "1", Actor{}, nil)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}

func TestDispatcherRecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()

	delivered := false
	d.Subscribe(EventAgentUpdated, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(EventAgentUpdated, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventAgentUpdated, "4", Actor{}, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler panic: boom")
	assert.True(t, delivered)
}

func TestDispatcherWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventAgentRegistered, "1", Actor{}, nil)))
}
