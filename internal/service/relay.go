package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const relayChannel = "nutrilog:entries:changed"

// Relay bridges the in-process notification bus across instances through a
// redis pub/sub channel: a mutation accepted on one instance triggers the
// canonical re-read on every instance with subscribers. uuid.Nil announces a
// global refresh (data clear).
type Relay struct {
	client     *redis.Client
	instanceID string
}

// NewRelay creates a new Relay instance
func NewRelay(client *redis.Client) *Relay {
	return &Relay{client: client, instanceID: uuid.NewString()}
}

// Announce publishes a change notice for the given user.
func (r *Relay) Announce(ctx context.Context, userID uuid.UUID) error {
	return r.client.Publish(ctx, relayChannel, r.instanceID+"|"+userID.String()).Err()
}

// Listen consumes change notices from other instances until the context is
// canceled. Notices from this instance are skipped; the local bus already
// delivered them.
func (r *Relay) Listen(ctx context.Context, onChange func(context.Context, uuid.UUID)) {
	sub := r.client.Subscribe(ctx, relayChannel)
	defer func() {
		if err := sub.Close(); err != nil {
			log.Printf("relay subscription close failed: %v", err)
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			instance, rawID, found := strings.Cut(msg.Payload, "|")
			if !found || instance == r.instanceID {
				continue
			}
			userID, err := uuid.Parse(rawID)
			if err != nil {
				log.Printf("relay: malformed notice %q", msg.Payload)
				continue
			}
			onChange(ctx, userID)
		}
	}
}
