// Package feed carries change notifications between processes sharing the
// same durable store. Same-process writes are tagged with an origin id and
// filtered out by the writer's own subscription.
package feed

// Event describes one whole-value write to a store key.
type Event struct {
	Key    string `json:"key"`
	Value  []byte `json:"value"`
	Origin string `json:"origin"`
}

type Publisher interface {
	Publish(ev Event)
}

type Handler func(ev Event)

type Subscriber interface {
	// Subscribe registers handler for all subsequent events. The returned
	// function cancels the subscription.
	Subscribe(handler Handler) (cancel func())
}
