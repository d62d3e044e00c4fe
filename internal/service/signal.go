package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/totegamma/shoplist/internal/domain"
)

// EventChannel is the redis pub/sub channel carrying change events.
const EventChannel = "shoplist:events"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "SignalService.Publish: marshal failed")
	}

	err = s.rdb.Publish(ctx, EventChannel, jsonstr).Err()
	if err != nil {
		return errors.Wrap(err, "SignalService.Publish: publish failed")
	}

	return nil
}

// Realtime forwards every event on EventChannel to output until ctx is done.
// output is never closed here.
func (s *SignalService) Realtime(ctx context.Context, output chan<- domain.Event) error {
	pubsub := s.rdb.Subscribe(ctx, EventChannel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "SignalService.Realtime: subscribe failed")
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
