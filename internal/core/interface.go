package core

import (
	"context"

	"github.com/auto-dns/docker-hosts-sync/internal/domain"
)

type containerLister interface {
	ListRunning(ctx context.Context) ([]domain.ContainerRecord, error)
}

type eventSubscriber interface {
	Subscribe(ctx context.Context) <-chan domain.ContainerEvent
}

type sectionApplier interface {
	Apply(body []string) error
}
