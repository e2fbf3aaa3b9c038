package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

const defaultChannel = "dotai.changes"

// Redis fans events out across processes through a single pub/sub channel.
// It is the production counterpart of Bus: every process publishes its own
// writes and receives everyone else's.
type Redis struct {
	client  *redis.Client
	channel string
	log     *slog.Logger

	mu       sync.Mutex
	nextID   int
	handlers map[int]Handler

	cancel context.CancelFunc
}

func NewRedis(client *redis.Client, log *slog.Logger) *Redis {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Redis{
		client:   client,
		channel:  defaultChannel,
		log:      log,
		handlers: make(map[int]Handler),
		cancel:   cancel,
	}
	go r.receive(ctx)
	return r
}

func (r *Redis) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.log.Error("marshal change event", "key", ev.Key, "err", err)
		return
	}
	if err := r.client.Publish(context.Background(), r.channel, payload).Err(); err != nil {
		r.log.Error("publish change event", "key", ev.Key, "err", err)
	}
}

func (r *Redis) Subscribe(handler Handler) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = handler
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.handlers, id)
		r.mu.Unlock()
	}
}

func (r *Redis) Close() {
	r.cancel()
}

func (r *Redis) receive(ctx context.Context) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				// A corrupt notification must never take the receiver down.
				r.log.Error("drop malformed change event", "err", err)
				continue
			}
			r.mu.Lock()
			handlers := make([]Handler, 0, len(r.handlers))
			for _, h := range r.handlers {
				handlers = append(handlers, h)
			}
			r.mu.Unlock()
			for _, h := range handlers {
				h(ev)
			}
		}
	}
}
