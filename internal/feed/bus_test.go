package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []Event
	bus.Subscribe(func(ev Event) { first = append(first, ev) })
	bus.Subscribe(func(ev Event) { second = append(second, ev) })

	ev := Event{Key: "k", Value: []byte(`"v"`), Origin: "o"}
	bus.Publish(ev)

	assert.Equal(t, []Event{ev}, first)
	assert.Equal(t, []Event{ev}, second)
}

func TestBusCancelStopsDelivery(t *testing.T) {
	bus := NewBus()

	var got []Event
	cancel := bus.Subscribe(func(ev Event) { got = append(got, ev) })

	bus.Publish(Event{Key: "a"})
	cancel()
	bus.Publish(Event{Key: "b"})

	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Key)
}
