package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())
	go bus.Run()
	defer bus.Stop()

	ch, cancel := bus.Subscribe("test")
	defer cancel()

	bus.Publish(ActivityToggled{
		UserID:    1,
		Phase:     "stack",
		Day:       1,
		Hour:      1,
		Activity:  "Read chapter",
		Completed: true,
		At:        time.Now(),
	})

	select {
	case ev := <-ch:
		toggled, ok := ev.(ActivityToggled)
		require.True(t, ok)
		assert.Equal(t, "progress.activity_toggled", ev.Name())
		assert.Equal(t, "Read chapter", toggled.Activity)
		assert.True(t, toggled.Completed)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(zap.NewNop())
	go bus.Run()
	defer bus.Stop()

	ch, cancel := bus.Subscribe("test")
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after unsubscribe")
	}
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Publish(PlanUpdated{UserID: 1, Date: "2026-09-01", At: time.Now()})
	})
}

func TestStopClosesSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	go bus.Run()

	ch, _ := bus.Subscribe("test")
	bus.Stop()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after stop")
	}
}
