package events

import (
	"context"
	"encoding/json"
	"streak-pickem-go/logging"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// LeaderboardTopic carries leaderboard change events between sessions.
const LeaderboardTopic = "leaderboard.updated"

// Event is a broadcast signal telling connected sessions to refresh.
type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"userId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Broadcaster fans leaderboard change events out to every subscribed
// session over an in-process pub/sub. Delivery is best effort: a slow
// subscriber drops events rather than blocking publishers.
type Broadcaster struct {
	pubSub *gochannel.GoChannel
}

// NewBroadcaster creates a broadcaster backed by a buffered channel pub/sub.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NopLogger{}),
	}
}

// Publish emits a leaderboard change event.
func (b *Broadcaster) Publish(eventType, userID string) error {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	return b.pubSub.Publish(LeaderboardTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe returns a channel of decoded events. The channel closes when
// the context is cancelled or the broadcaster shuts down.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan Event, error) {
	messages, err := b.pubSub.Subscribe(ctx, LeaderboardTopic)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			var evt Event
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				logging.Warnf("Broadcaster: dropping malformed event: %v", err)
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- evt:
			default:
			}
		}
	}()
	return out, nil
}

// Close shuts the pub/sub down and closes all subscriber channels.
func (b *Broadcaster) Close() error {
	return b.pubSub.Close()
}
