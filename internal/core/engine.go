package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/auto-dns/docker-hosts-sync/internal/config"
	"github.com/auto-dns/docker-hosts-sync/internal/hostsfile"
)

// SyncEngine serializes reconciliation runs triggered by the interval timer
// and the Docker event stream. Wake-ups funnel through a capacity-1 channel:
// a wake arriving while a run is in flight collapses into at most one
// follow-up run, so an event storm never queues unbounded work.
type SyncEngine struct {
	logger  zerolog.Logger
	cfg     *config.SyncConfig
	lister  containerLister
	events  eventSubscriber
	applier sectionApplier
	kick    chan struct{}
}

func NewSyncEngine(logger zerolog.Logger, cfg *config.SyncConfig, lister containerLister, events eventSubscriber, applier sectionApplier) *SyncEngine {
	return &SyncEngine{
		logger:  logger,
		cfg:     cfg,
		lister:  lister,
		events:  events,
		applier: applier,
		kick:    make(chan struct{}, 1),
	}
}

// requestSync asks for a reconciliation run. A request that finds one
// already pending is dropped, which is the coalescing guarantee.
func (se *SyncEngine) requestSync() {
	select {
	case se.kick <- struct{}{}:
	default:
		coalescedWakesTotal.Inc()
	}
}

// Run drives the engine until ctx is cancelled. An in-flight run completes
// to its write-or-abort outcome before Run returns.
func (se *SyncEngine) Run(ctx context.Context) error {
	se.logger.Info().
		Dur("interval", se.cfg.UpdateInterval).
		Str("domain", se.cfg.DomainSuffix).
		Msg("Starting sync engine")

	eventCh := se.events.Subscribe(ctx)

	go func() {
		ticker := time.NewTicker(se.cfg.UpdateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				se.logger.Debug().Msg("Timer tick")
				se.requestSync()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case evt, ok := <-eventCh:
				if !ok {
					se.logger.Info().Msg("Event channel closed")
					return
				}
				se.logger.Debug().
					Str("event", string(evt.Type)).
					Str("container_id", evt.ContainerID).
					Msg("Event wake-up")
				se.requestSync()
			case <-ctx.Done():
				return
			}
		}
	}()

	// First run happens immediately so entries exist before the first tick.
	se.requestSync()

	for {
		select {
		case <-ctx.Done():
			se.logger.Info().Msg("Sync engine shutting down")
			return ctx.Err()
		case <-se.kick:
			se.runOnce(ctx)
		}
	}
}

// runOnce executes a single reconciliation: query the runtime, build the
// desired name set, rewrite the managed section. Failures are contained to
// this cycle; the next wake retries from scratch.
func (se *SyncEngine) runOnce(ctx context.Context) {
	syncRunsTotal.Inc()

	records, err := se.lister.ListRunning(ctx)
	if err != nil {
		syncFailuresTotal.Inc()
		se.logger.Error().Err(err).Msg("Skipping cycle: querying containers failed")
		return
	}

	nameSet := hostsfile.BuildNameSet(records, se.cfg.DomainSuffix, se.logger)
	managedEntriesGauge.Set(float64(nameSet.Len()))

	if err := se.applier.Apply(nameSet.Render()); err != nil {
		syncFailuresTotal.Inc()
		se.logger.Error().Err(err).Msg("Updating hosts file failed")
		return
	}
	se.logger.Debug().Int("entries", nameSet.Len()).Msg("Reconciliation cycle complete")
}
