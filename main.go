package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/irish-dem-polling/dashboard/auth"
	"github.com/irish-dem-polling/dashboard/cliparse"
	"github.com/irish-dem-polling/dashboard/dataset"
	"github.com/irish-dem-polling/dashboard/db"
	"github.com/irish-dem-polling/dashboard/middleware"
	"github.com/irish-dem-polling/dashboard/router"
	"github.com/irish-dem-polling/dashboard/session"
)

func main() {
	var err error

	// Optional .env file; real environment variables take precedence
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	// Load every table; any failure stops startup
	store, err := loadStore(cfg)
	if err != nil {
		slog.Error("dashboard failed to start", "source", cfg.Source, "error", err)
		os.Exit(1)
	}
	for _, d := range store.Datasets() {
		first, last := d.DateRange()
		slog.Info("table loaded",
			"table", d.Key().String(),
			"rows", humanize.Comma(int64(d.Len())),
			"series", len(d.Series()),
			"from", first.Format("2006-01-02"),
			"to", last.Format("2006-01-02"),
		)
	}
	slog.Info("Dataset store ready", "rows", humanize.Comma(int64(store.Rows())))

	if cfg.SessionSecret == "" {
		cfg.SessionSecret, err = auth.GenerateSecret(32)
		if err != nil {
			slog.Error("session secret generation failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("SESSION_SECRET not set; using a random secret, sessions end on restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	// Create router
	mux := router.NewRouter(store, sessions, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

func loadStore(cfg cliparse.Config) (*dataset.Store, error) {
	if cfg.Source != cliparse.SourceSQL {
		slog.Info("Loading tables", "dir", cfg.DataDir)
		return dataset.LoadDir(cfg.DataDir)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	slog.Info("Loading tables", "database", cfg.DatabaseType)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return dataset.LoadSQL(ctx, conn, cfg.DatabaseType)
}
