package docker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/errdefs"
	"github.com/rs/zerolog"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

// Adapter is the read-only query boundary to the Docker daemon. Every call
// is bounded by a timeout so a hung daemon can never hang a reconciliation
// cycle.
type Adapter struct {
	cli     dockerClient
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAdapter(cli dockerClient, timeout time.Duration, logger zerolog.Logger) *Adapter {
	return &Adapter{
		cli:     cli,
		timeout: timeout,
		logger:  logger,
	}
}

// ListRunning returns a snapshot of every running container with its
// per-network addresses, hostname, and aliases. A container that vanishes
// between list and inspect is skipped, not an error.
func (a *Adapter) ListRunning(ctx context.Context) ([]domain.ContainerRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: false})
	if err != nil {
		return nil, wrapQueryError("listing containers", err)
	}

	records := make([]domain.ContainerRecord, 0, len(containers))
	for _, c := range containers {
		inspect, err := a.cli.ContainerInspect(ctx, c.ID)
		if err != nil {
			if errdefs.IsNotFound(err) {
				a.logger.Debug().Str("container_id", c.ID).Msg("Container gone before inspect, skipping")
				continue
			}
			return nil, wrapQueryError(fmt.Sprintf("inspecting container %s", c.ID), err)
		}
		records = append(records, fromInspectResponse(inspect))
	}
	return records, nil
}

func wrapQueryError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrQueryTimeout)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrRuntimeUnavailable, err)
}
