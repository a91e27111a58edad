// Command routeviz serves the Nigerian state route map: it loads the state
// network, asks the route service for shortest paths and animates them on a
// server-side scene streamed to clients over WebSocket.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naijapath/routeviz/internal/animation"
	"github.com/naijapath/routeviz/internal/api"
	"github.com/naijapath/routeviz/internal/clock"
	"github.com/naijapath/routeviz/internal/config"
	"github.com/naijapath/routeviz/internal/routesvc"
	"github.com/naijapath/routeviz/internal/scene"
	"github.com/naijapath/routeviz/internal/service"
	"github.com/naijapath/routeviz/internal/topology"
	"github.com/naijapath/routeviz/internal/ws"
)

const (
	shutdownTimeout  = 10 * time.Second
	historyQueueSize = 100
	historyLimit     = 50
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("routeviz stopped")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	// Level and format were checked by config validation.
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	graph, err := topology.Load(cfg.GraphFile)
	if err != nil {
		return fmt.Errorf("loading topology: %w", err)
	}

	log.WithFields(logrus.Fields{
		"states":      graph.NodeCount(),
		"connections": graph.EdgeCount(),
		"source":      graphSource(cfg.GraphFile),
	}).Info("topology loaded")

	hub := ws.NewHub(log)
	clk := clock.Real()

	renderer := scene.NewRenderer(clk, log, hub)
	renderer.Build(graph)
	hub.Attach(renderer)

	routes := routesvc.New(cfg.RouteEndpoint, log, routesvc.WithTimeout(cfg.RouteTimeout))
	history := service.NewHistoryWorker(log, historyQueueSize, historyLimit)

	orch := service.NewOrchestrator(service.Deps{
		Graph:    graph,
		Routes:   routes,
		Stage:    renderer,
		Animator: animation.NewController(renderer, graph, log),
		Clock:    clk,
		Sink:     hub,
		History:  history,
	}, service.Options{
		GraceDelay:   cfg.GraceDelay,
		DefaultSpeed: cfg.AnimationSpeed,
	}, log)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:            log,
		Hub:            hub,
		Graph:          graph,
		Routes:         orch,
		Scene:          renderer,
		History:        history,
		Readiness:      routes,
		CORSOrigins:    cfg.CORSOrigins,
		Version:        config.Version,
		RouteEndpoint:  cfg.RouteEndpoint,
		DefaultSpeedMS: orch.DefaultSpeed().Milliseconds(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		history.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":          cfg.Addr(),
			"version":       config.Version,
			"route_service": cfg.RouteEndpoint,
		}).Info("routeviz listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		// Stop pending animation timers before connections drain.
		orch.Reset()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func graphSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}
