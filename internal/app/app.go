package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/freelancer/internal/config"
	"github.com/klokku/freelancer/internal/kvstore"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewApplicationWithStore(store, cfg), nil
}

// NewApplicationWithStore builds the application on an already opened store.
func NewApplicationWithStore(store kvstore.Store, cfg config.Application) *Application {
	r := mux.NewRouter()

	deps := BuildDependencies(store, cfg)

	SetupMiddleware(r, deps, cfg)
	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}
}

func (a *Application) Dependencies() *Dependencies {
	return a.deps
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is cancelled, then shuts the server down and
// closes the store.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		if err := a.deps.Store.Close(); err != nil {
			log.Errorf("failed to close store: %v", err)
		}
	}()

	status, err := a.deps.TimerService.Current(ctx)
	if err != nil {
		log.Warnf("could not load persisted timer: %v", err)
	} else if status.Running {
		log.Infof("Resuming timer for project %s started at %s", status.Timer.ProjectId, status.Timer.Start.Format(time.RFC3339))
		a.deps.Telemetry.TimerRunning.Set(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
