package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dockerCli "github.com/docker/docker/client"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/auto-dns/docker-hosts-sync/internal/config"
	"github.com/auto-dns/docker-hosts-sync/internal/core"
	"github.com/auto-dns/docker-hosts-sync/internal/docker"
	"github.com/auto-dns/docker-hosts-sync/internal/hostsfile"
)

const startupPingTimeout = 5 * time.Second

type App struct {
	cfg          *config.Config
	dockerClient *dockerCli.Client
	reconciler   *hostsfile.Reconciler
	engine       *core.SyncEngine
	logger       zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	client, err := dockerCli.NewClientWithOpts(dockerCli.FromEnv, dockerCli.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}

	adapter := docker.NewAdapter(client, cfg.Docker.QueryTimeout, logger)
	stream := docker.NewEventStream(client, logger)
	reconciler := hostsfile.NewReconciler(afero.NewOsFs(), cfg.Sync.HostsPath, logger)
	engine := core.NewSyncEngine(logger, &cfg.Sync, adapter, stream, reconciler)

	return &App{
		cfg:          cfg,
		dockerClient: client,
		reconciler:   reconciler,
		engine:       engine,
		logger:       logger,
	}, nil
}

// Run checks startup preconditions and drives the sync engine until ctx is
// cancelled. An unreachable Docker daemon at startup is fatal; later
// failures are retried cycle by cycle.
func (a *App) Run(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if _, err := a.dockerClient.Ping(pingCtx); err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	a.logger.Info().Msg("Docker daemon reachable")

	if err := a.reconciler.CheckWritable(); err != nil {
		return err
	}

	if err := a.reconciler.Sanitize(); err != nil {
		a.logger.Warn().Err(err).Msg("Hosts file sanitization failed")
	}

	if a.cfg.Metrics.Enabled {
		go a.serveMetrics()
	}

	a.logger.Info().Msg("Application starting")
	return a.engine.Run(ctx)
}

func (a *App) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle(a.cfg.Metrics.Path, promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"healthy": true}`)
	})

	a.logger.Info().
		Str("addr", a.cfg.Metrics.ListenAddr).
		Str("path", a.cfg.Metrics.Path).
		Msg("Starting metrics endpoint")
	if err := http.ListenAndServe(a.cfg.Metrics.ListenAddr, mux); err != nil {
		a.logger.Error().Err(err).Msg("Metrics endpoint stopped")
	}
}

func (a *App) Close() error {
	if a.dockerClient != nil {
		if err := a.dockerClient.Close(); err != nil {
			return fmt.Errorf("close docker client: %w", err)
		}
	}
	return nil
}
