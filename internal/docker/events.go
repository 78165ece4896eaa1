package docker

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/rs/zerolog"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

const eventBufferSize = 100

var errStreamClosed = errors.New("docker event stream closed")

// EventStream subscribes to the daemon's lifecycle events and republishes
// them as domain events. A dropped stream is reconnected with exponential
// backoff; the stream only terminates when the context does.
type EventStream struct {
	cli    dockerClient
	logger zerolog.Logger
}

func NewEventStream(cli dockerClient, logger zerolog.Logger) *EventStream {
	return &EventStream{
		cli:    cli,
		logger: logger,
	}
}

// Subscribe returns a channel of lifecycle events. The channel is closed
// when ctx is cancelled.
func (s *EventStream) Subscribe(ctx context.Context) <-chan domain.ContainerEvent {
	out := make(chan domain.ContainerEvent, eventBufferSize)

	go func() {
		defer close(out)

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 500 * time.Millisecond
		bo.MaxInterval = 30 * time.Second
		bo.MaxElapsedTime = 0

		for {
			delivered, err := s.stream(ctx, out)
			if ctx.Err() != nil {
				s.logger.Info().Msg("Docker event stream cancelled")
				return
			}
			if delivered {
				bo.Reset()
			}
			wait := bo.NextBackOff()
			s.logger.Warn().Err(err).Dur("retry_in", wait).Msg("Docker event stream dropped, reconnecting")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				s.logger.Info().Msg("Docker event stream cancelled")
				return
			}
		}
	}()

	return out
}

// stream consumes one subscription until it fails or the context ends. It
// reports whether any event was delivered, so the caller can reset its
// reconnect backoff after a healthy connection.
func (s *EventStream) stream(ctx context.Context, out chan<- domain.ContainerEvent) (bool, error) {
	msgCh, errCh := s.cli.Events(ctx, events.ListOptions{Filters: eventFilters()})

	delivered := false
	for {
		select {
		case <-ctx.Done():
			return delivered, ctx.Err()
		case err := <-errCh:
			if err == nil {
				err = errStreamClosed
			}
			return delivered, err
		case msg, ok := <-msgCh:
			if !ok {
				return delivered, errStreamClosed
			}
			evt, ok := fromEventsMessage(msg)
			if !ok {
				s.logger.Debug().
					Str("type", string(msg.Type)).
					Str("action", string(msg.Action)).
					Msg("Ignoring unsupported Docker event")
				continue
			}
			s.logger.Debug().
				Str("event", string(evt.Type)).
				Str("container_id", evt.ContainerID).
				Str("container", evt.ContainerName).
				Msg("Received Docker event")
			select {
			case out <- evt:
				delivered = true
			case <-ctx.Done():
				return delivered, ctx.Err()
			}
		}
	}
}

func eventFilters() filters.Args {
	f := filters.NewArgs()
	f.Add("type", "container")
	f.Add("type", "network")
	f.Add("event", "start")
	f.Add("event", "stop")
	f.Add("event", "die")
	f.Add("event", "kill")
	f.Add("event", "pause")
	f.Add("event", "unpause")
	f.Add("event", "connect")
	f.Add("event", "disconnect")
	return f
}
