package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"academic-records/console/internal/api"
	"academic-records/console/internal/config"
	"academic-records/console/internal/idp"
	"academic-records/console/internal/notify"
	"academic-records/console/internal/routing"
	"academic-records/console/internal/session"
	"academic-records/console/internal/session/cache"
	consoleotel "academic-records/console/internal/telemetry/otel"
)

// app wires the session manager, guard, transports, and backend client.
type app struct {
	cfg      *config.Config
	idp      *idp.Client
	sessions *session.Manager
	guard    *routing.Guard
	api      *api.Client
	notifier *notify.Dispatcher
	shutdown func(context.Context) error
}

// newApp builds the application from config. The backend client's transport
// carries credential attachment and failure translation, so every API call
// site gets both transparently.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	providers, err := consoleotel.NewProviders(ctx, cfg.OTLPEndpoint, "academic-records-console", cfg.OTLPInsecure)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	providers.SetGlobal()

	provider := idp.NewClient(cfg.IDPURL, cfg.IDPRealm, cfg.IDPClientID, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout(),
	})

	manager := session.NewManager(provider, cache.NewFileCache(cfg.TokenCachePath))
	notifier := notify.NewDispatcher(false)

	onUnauthorized := func() {
		manager.ForceLogout()
		log.Printf("session no longer valid; redirecting to %s", routing.LoginPath)
	}
	transport := api.NewTransport(
		otelhttp.NewTransport(http.DefaultTransport),
		manager,
		provider,
		notifier,
		onUnauthorized,
	)
	client := api.NewClient(cfg.APIBaseURL, &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout(),
	})

	return &app{
		cfg:      cfg,
		idp:      provider,
		sessions: manager,
		guard:    routing.NewGuard(manager),
		api:      client,
		notifier: notifier,
		shutdown: providers.Shutdown,
	}, nil
}

// navigate runs the guard for route and returns an error when the
// navigation is not admitted. Guard evaluation happens before any data
// loading for the command.
func (a *app) navigate(route routing.Route) error {
	nav := routing.NewNavigation(route)
	a.guard.Begin(nav)
	d := a.guard.Evaluate(nav)
	if d.Admit {
		return nil
	}
	if d.RedirectTo != "" {
		return fmt.Errorf("not admitted to %s: redirected to %s", route.Path, d.RedirectTo)
	}
	return errors.New("navigation superseded")
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}
}
