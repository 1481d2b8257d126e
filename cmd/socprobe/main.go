package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"socprobe/internal/auth"
	"socprobe/internal/codec"
	"socprobe/internal/config"
	"socprobe/internal/domain"
	"socprobe/internal/logger"
	"socprobe/internal/metrics"
	"socprobe/internal/storage/postgres"
	"socprobe/internal/storage/snapshot"
	"socprobe/internal/storage/sqlite"
	"socprobe/internal/telemetry"
	"socprobe/internal/transport/http"
	"socprobe/internal/transport/http/middleware"
	"socprobe/internal/transport/http/request"
	"socprobe/internal/transport/http/response"
	"socprobe/internal/transport/http/validator"
	"socprobe/internal/transport/websocket"
	"socprobe/internal/workers"
)

func main() {
	cfg := config.Load()

	var (
		family string
		warmup time.Duration
	)

	flags := pflag.NewFlagSet("socprobe", pflag.ExitOnError)
	flags.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "snapshot, stream or serve")
	flags.StringVarP(&cfg.OutputFormat, "format", "f", cfg.OutputFormat, "output encoding: json or cbor")
	flags.DurationVarP(&cfg.Interval, "interval", "i", cfg.Interval, "sampling interval for stream and serve")
	flags.StringVar(&cfg.SysfsRoot, "root", cfg.SysfsRoot, "filesystem root holding /sys and /proc")
	flags.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "YAML file overriding path candidates")
	flags.StringVar(&cfg.Address, "addr", cfg.Address, "listen address for serve")
	flags.StringVar(&cfg.HistoryDB, "history-db", cfg.HistoryDB, "sqlite file or postgres:// url for sample history (serve)")
	flags.StringVar(&family, "family", "", "emit a single metric family instead of the full snapshot")
	flags.DurationVar(&warmup, "warmup", 250*time.Millisecond, "delay between priming and reading counters in snapshot mode")
	flags.Parse(os.Args[1:])

	log := logger.New(cfg)

	if !codec.Valid(cfg.OutputFormat) {
		log.Error("unsupported output format", "format", cfg.OutputFormat)
		os.Exit(2)
	}
	if family != "" && !validFamily(family) {
		log.Error("unknown metric family", "family", family, "families", telemetry.Families())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := telemetry.NewService(cfg, log)
	if err != nil {
		log.Error("failed to init telemetry", "error", err)
		os.Exit(1)
	}

	switch cfg.Mode {
	case config.ModeServe:
		err = serve(ctx, cfg, svc, log)
	case config.ModeStream:
		err = stream(ctx, cfg, svc, family, os.Stdout)
	default:
		err = once(ctx, cfg, svc, family, warmup, os.Stdout)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("socprobe stopped", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func validFamily(name string) bool {
	return slices.Contains(telemetry.Families(), name)
}

func read(svc *telemetry.Service, family string) any {
	if family == "" {
		return svc.Snapshot()
	}
	v, _ := svc.Family(family)
	return v
}

// once primes the counters, waits for warmup and prints one reading.
func once(ctx context.Context, cfg *config.Config, svc *telemetry.Service, family string, warmup time.Duration, w io.Writer) error {
	svc.Snapshot()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(warmup):
	}

	enc, err := codec.NewEncoder(w, cfg.OutputFormat)
	if err != nil {
		return err
	}
	return enc.Encode(read(svc, family))
}

func stream(ctx context.Context, cfg *config.Config, svc *telemetry.Service, family string, w io.Writer) error {
	enc, err := codec.NewEncoder(w, cfg.OutputFormat)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		if err := enc.Encode(read(svc, family)); err != nil {
			return fmt.Errorf("failed to write sample: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func serve(ctx context.Context, cfg *config.Config, svc *telemetry.Service, log logger.Logger) error {
	var history domain.HistoryRepository
	switch {
	case postgres.IsDSN(cfg.HistoryDB):
		pool, err := postgres.InitDB(ctx, cfg.HistoryDB, log)
		if err != nil {
			return fmt.Errorf("failed to open history db: %w", err)
		}
		defer pool.Close()
		history = postgres.NewHistoryRepository(pool)

	case cfg.HistoryDB != "":
		db, err := sqlite.NewSqliteDB(cfg.HistoryDB, log)
		if err != nil {
			return fmt.Errorf("failed to open history db: %w", err)
		}
		defer db.Close()
		history = sqlite.NewHistoryRepository(db)
	}

	store := snapshot.NewSnapshotStore()
	exporter := metrics.NewExporter()
	hub := websocket.NewHub(log.With("component", "ws"))

	var (
		authHandler *http.AuthHandler
		verifier    middleware.TokenValidator
	)

	res := response.NewWriter(log)
	v := validator.NewValidator()

	if cfg.AuthEnabled() {
		authSvc := auth.NewService(cfg.APIKeyHash, cfg.JWTSecret, cfg.JWTExpiry)
		authHandler = http.NewAuthHandler(authSvc, request.NewJSONDecoder(), res, v)
		verifier = authSvc
	}

	wsHandler := websocket.NewHandler(hub, log.With("component", "ws"), cfg, verifier)

	router := http.NewRouter(cfg, &http.RouterDeps{
		Telemetry: http.NewTelemetryHandler(svc, store, res),
		History:   http.NewHistoryHandler(history, res, v),
		Auth:      authHandler,
		Metrics:   exporter.Handler(),
		Ws:        wsHandler.Serve,
		Validator: verifier,
		Log:       log.With("component", "http"),
	})

	manager := workers.NewManager(workers.NewScheduler(log), cfg, log, &workers.ManagerServices{
		Telemetry: svc,
		Store:     store,
		Observer:  exporter,
		Publisher: hub,
		History:   history,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		manager.Start(gctx)
		manager.Wait()
		return nil
	})

	g.Go(func() error {
		return http.Serve(gctx, http.NewServer(router, cfg.Address), log)
	})

	return g.Wait()
}
