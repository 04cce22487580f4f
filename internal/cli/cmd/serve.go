package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/tabmover/internal/app/placement"
	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/config"
	"github.com/bnema/tabmover/internal/infrastructure/host/bridge"
	"github.com/bnema/tabmover/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabmover/internal/logging"
	"github.com/bnema/tabmover/internal/ui/mainloop"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bridge the browser extension connects to",
	Long: `Start the local WebSocket bridge and the placement listener.

The browser extension connects to ws://<listen_addr><path> (default
ws://127.0.0.1:7373/ws) and forwards tabs.onCreated events. Each new tab
that did not open at the very front is moved right after the pinned tabs.

GET /healthz reports whether an extension is connected. Every decision is
recorded in the placement journal (see 'tabmover history').

The log level follows config.toml while running.

Examples:
  tabmover serve
  tabmover serve --listen 127.0.0.1:9000
  TABMOVER_LOG_LEVEL=debug tabmover serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "override bridge.listen_addr")
}

func runServe(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	if serveListenAddr != "" {
		cfg.Bridge.ListenAddr = serveListenAddr
	}

	// The logger itself lets everything through; the global level gates it
	// so a config reload can change verbosity in place.
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	app.SetLogger(logging.NewFromConfigValues("trace", cfg.Logging.Format))

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	watchConfig(ctx, app.Manager)

	srv := bridge.NewServer(ctx, bridge.Options{
		AllowedOrigins: cfg.Bridge.AllowedOrigins,
		WriteTimeout:   cfg.Bridge.WriteTimeout,
		PingInterval:   cfg.Bridge.PingInterval,
	})
	httpServer := &http.Server{
		Addr:              cfg.Bridge.ListenAddr,
		Handler:           newServeMux(cfg.Bridge.Path, srv),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	loop := mainloop.New(ctx)
	loop.Start()
	defer loop.Stop()

	placer := usecase.NewPlaceNewTabUseCase(srv, usecase.NewCountPinnedTabsUseCase(srv))
	listener := placement.NewListener(srv, loop, placer)
	if recorder, closeJournal := openJournal(ctx, cfg.Database); recorder != nil {
		defer closeJournal()
		listener.OnPlaced(func(tab entity.Tab, out *usecase.PlaceNewTabOutput) {
			_ = recorder.Execute(ctx, tab, out)
		})
	}
	if err := listener.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = listener.Stop() }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", cfg.Bridge.ListenAddr).
			Str("path", cfg.Bridge.Path).
			Msg("bridge listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("bridge server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Close()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newServeMux routes the bridge endpoint and a health probe.
func newServeMux(path string, srv *bridge.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(path, srv)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":              "ok",
			"extension_connected": srv.Connected(),
		})
	})
	return mux
}

// watchConfig applies log level changes from config.toml until ctx ends.
func watchConfig(ctx context.Context, mgr *config.Manager) {
	if mgr == nil {
		return
	}
	log := logging.FromContext(ctx)

	mgr.OnConfigChange(func(cfg *config.Config) {
		if ctx.Err() != nil {
			return
		}
		level := logging.ParseLevel(cfg.Logging.Level)
		zerolog.SetGlobalLevel(level)
		log.Info().Str("level", level.String()).Msg("configuration reloaded")
	})
	if err := mgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config hot reload disabled")
	}
}

// openJournal opens the placement journal. A journal that cannot be opened
// is logged and skipped; placement works without it.
func openJournal(ctx context.Context, cfg config.DatabaseConfig) (*usecase.RecordPlacementUseCase, func()) {
	log := logging.FromContext(ctx)

	db, err := sqlite.NewConnection(ctx, cfg.Path)
	if err != nil {
		log.Warn().Err(err).Msg("placement journal disabled")
		return nil, func() {}
	}

	recorder := usecase.NewRecordPlacementUseCase(sqlite.NewPlacementRepository(db))
	if cfg.KeepEntries > 0 {
		if _, err := recorder.Prune(ctx, cfg.KeepEntries); err != nil {
			log.Warn().Err(err).Msg("failed to prune placement journal")
		}
	}
	return recorder, func() { _ = db.Close() }
}
