package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/api"
	"github.com/thinkfirst-app/thinkfirst/internal/app/classify"
	"github.com/thinkfirst-app/thinkfirst/internal/app/tracker"
	"github.com/thinkfirst-app/thinkfirst/internal/domain"
	"github.com/thinkfirst-app/thinkfirst/internal/health"
	"github.com/thinkfirst-app/thinkfirst/internal/infra/sqlite"
)

// Daemon is the core ThinkFirst runtime. It wires together storage,
// the tracker engine, and the HTTP API.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Engine  *tracker.Engine
	Server  *api.Server
	Hub     *api.Hub
	Health  *health.Checker
	version string
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	db, err := sqlite.Open(thinkfirstHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Remote classification needs a key; without one the engine runs
	// on the heuristic alone, which is fine for normal operation.
	var remote classify.RemoteAnalyzer
	if key := cfg.Classifier.APIKey(); key != "" {
		remote = classify.NewRemoteClient(classify.RemoteConfig{
			Endpoint: cfg.Classifier.Endpoint,
			APIKey:   key,
			Model:    cfg.Classifier.Model,
			Timeout:  cfg.Classifier.TimeoutDuration(),
		})
	} else {
		log.Printf("[daemon] no classifier API key in $%s, using heuristic only", cfg.Classifier.APIKeyEnv)
	}

	hub := api.NewHub()
	notifier := domain.Notifier(hub)
	if cfg.Notifications.Desktop {
		notifier = multiNotifier{hub, desktopNotifier{}}
	}

	store := sqlite.NewStateStore(db)
	engine := tracker.New(tracker.Options{
		Store:            store,
		Notifier:         notifier,
		Classifier:       classify.New(remote),
		Limits:           cfg.Limits.DomainLimits(),
		DefaultDailyGoal: cfg.Gamification.DefaultDailyGoal,
	})

	checker := health.NewChecker(db, thinkfirstHome(), store)

	srv := api.NewServer(engine, version)
	srv.SetHub(hub)
	srv.SetHealth(checker)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Engine:  engine,
		Server:  srv,
		Hub:     hub,
		Health:  checker,
		version: version,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // long for the SSE stream
		IdleTimeout:  2 * time.Minute,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Let in-flight classifications land before the store goes
		// away.
		d.Engine.Wait()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("ThinkFirst serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.Engine != nil {
		d.Engine.Wait()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}

// multiNotifier fans one notification out to several sinks.
type multiNotifier []domain.Notifier

func (m multiNotifier) LevelUp(level int) {
	for _, n := range m {
		n.LevelUp(level)
	}
}

func (m multiNotifier) InterventionRequired(prompt string, a domain.Analysis) {
	for _, n := range m {
		n.InterventionRequired(prompt, a)
	}
}
