package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/etnz/wealth/server"
	"github.com/etnz/wealth/session"
)

type serveCmd struct {
	host string
	port int
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the active record over HTTP" }
func (*serveCmd) Usage() string {
	return `fin serve [-host <host>] [-port <port>]

  Serves the active record as a JSON API until interrupted. See 'fin topic
  server' for the routes.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.host, "host", "", "Listen host. Defaults to $SERVER_HOST.")
	f.IntVar(&c.port, "port", 0, "Listen port. Defaults to $SERVER_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := openApp(ctx, session.WithMetrics(session.NewMetrics(reg)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	httpCfg := a.cfg.HTTP
	if c.host != "" {
		httpCfg.Host = c.host
	}
	if c.port != 0 {
		httpCfg.Port = c.port
	}

	router := server.NewRouter(a.logger, server.RouterDependencies{
		Health:  server.StoreHealthService{Store: a.store},
		API:     server.NewAPIHandlers(a.logger, a.session),
		Metrics: reg,
	})
	srv := server.New(a.logger, httpCfg, router)

	go a.session.Watch(ctx, a.cfg.Store.SyncInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	status := subcommands.ExitSuccess
	select {
	case <-ctx.Done():
		a.logger.Info("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			a.logger.Error("server stopped unexpectedly", "error", err)
			status = subcommands.ExitFailure
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", "error", err)
		status = subcommands.ExitFailure
	}
	return status
}
