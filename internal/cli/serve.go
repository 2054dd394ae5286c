package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sensor_relay/internal/handlers"
	"sensor_relay/internal/metrics"
	"sensor_relay/internal/repository/db"
	"sensor_relay/internal/server"
	"sensor_relay/internal/service"

	"github.com/spf13/cobra"
)

const (
	shutdownTimeout   = 10 * time.Second
	writeTimeoutSlack = 5 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	return cmd
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	log := a.log

	sqlDB, err := db.InitDB(a.cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("init event store: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	m := metrics.New()
	services := a.newServices(sqlDB, m)
	apiHandler := handlers.NewHandler(services, log, m)

	// context for background goroutines
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	go a.backgroundPolling(ctx, services)

	srv := &server.Server{WriteTimeout: a.writeTimeout()}
	errc := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "port", a.cfg.Port, "satellite", a.cfg.Satellite.BaseURL)
		errc <- srv.Run(a.cfg.Port, apiHandler.InitRoutes())
	}()

	return waitForShutdown(ctx, cancel, srv, errc, a)
}

// backgroundPolling runs the start-up refresh, then the periodic scheduler.
func (a *app) backgroundPolling(ctx context.Context, services *service.Service) {
	if a.cfg.Poll.OnStartup {
		if _, err := services.Poll(ctx); err != nil {
			a.log.Warnw("startup_poll_failed", "err", err)
		}
	}
	services.Scheduler.Run(ctx, a.cfg.Poll.Interval)
}

// writeTimeout lets /poll responses outlive a full refresh cycle.
func (a *app) writeTimeout() time.Duration {
	if a.cfg.Poll.CycleTimeout <= 0 {
		return -1
	}
	return a.cfg.Poll.CycleTimeout + writeTimeoutSlack
}

// waitForShutdown blocks until a termination signal or a server error, then
// stops background work and drains in-flight requests.
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, srv *server.Server, errc <-chan error, a *app) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
	case <-ctx.Done():
	case runErr = <-errc:
		if runErr != nil {
			runErr = fmt.Errorf("http server: %w", runErr)
		}
	}

	a.log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return runErr
}
