// Package notifications fans comment events out to websocket subscribers, locally and
// across instances through Redis pub/sub.
package notifications

import (
	"context"
	"log/slog"
	"runtime/debug"

	"soulverse/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// CommentEventsChannel is the Redis channel carrying comment feed events.
const CommentEventsChannel = "events:comments"

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Enabled reports whether events reach Redis.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// PublishCommentEvent sends an encoded event to every subscribed instance.
func (n *Notifier) PublishCommentEvent(ctx context.Context, payload string) error {
	if !n.Enabled() {
		return nil
	}
	return n.rdb.Publish(ctx, CommentEventsChannel, payload).Err()
}

// StartCommentSubscriber subscribes to CommentEventsChannel and calls onMessage for
// each incoming payload until ctx is cancelled.
func (n *Notifier) StartCommentSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if !n.Enabled() {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, CommentEventsChannel)
	// Wait for the subscription to be confirmed so publishes right after start are seen.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in comment subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
