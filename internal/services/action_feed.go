package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// ActionsChannel is the Redis pub/sub channel carrying new action-log
// entries to live viewers.
const ActionsChannel = "rentowl.actions"

// ActionFeed pushes freshly logged caretaker actions to subscribed
// viewers. Delivery is at-least-once for connected subscribers; there
// is no replay — a viewer that was disconnected re-queries the log.
type ActionFeed interface {
	Publish(ctx context.Context, a *models.CaretakerAction) error
	// Subscribe returns a channel of live entries and a stop function.
	// The channel closes when ctx ends or stop is called.
	Subscribe(ctx context.Context) (<-chan *models.CaretakerAction, func())
}

type redisActionFeed struct {
	client *redis.Client
}

func NewRedisActionFeed(client *redis.Client) ActionFeed {
	return &redisActionFeed{client: client}
}

func (f *redisActionFeed) Publish(ctx context.Context, a *models.CaretakerAction) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, ActionsChannel, payload).Err()
}

func (f *redisActionFeed) Subscribe(ctx context.Context) (<-chan *models.CaretakerAction, func()) {
	sub := f.client.Subscribe(ctx, ActionsChannel)
	out := make(chan *models.CaretakerAction)
	quit := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(quit)
			_ = sub.Close()
		})
	}

	// Closing the subscription ends sub.Channel(), which lets the
	// forwarding goroutine exit and close out. Without this watcher,
	// ctx expiry alone would leave it parked on an idle channel.
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-quit:
		}
	}()

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var a models.CaretakerAction
			if err := json.Unmarshal([]byte(msg.Payload), &a); err != nil {
				utils.Logger.WithError(err).Warn("Action feed: dropping undecodable message")
				continue
			}
			select {
			case out <- &a:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, stop
}
