package front

import (
	"context"

	"github.com/advdv/tbgate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	ServerConfig
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// runtimeProviderParams holds dependencies for Runtime.
type runtimeProviderParams[E Environment] struct {
	fx.In

	Env E
	Mux *Mux
}

// WithRegistry routes the gateway against the given instance registry. An
// app created without one serves the unavailability fallback on every route.
func WithRegistry(registry tbgate.Registry) Option {
	return func(c *AppConfig) {
		c.Registry = registry
	}
}

// WithXSRFCheck overrides the default double-submit cookie check, typically
// to delegate to a host session layer.
func WithXSRFCheck(check XSRFCheck) Option {
	return func(c *AppConfig) {
		c.XSRFCheck = check
	}
}

// WithFx adds fx options for dependency injection.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// FxOptions builds the complete dependency graph for an app. Exposed so test
// harnesses can construct the identical graph through fxtest.
func FxOptions[E Environment](opts ...Option) []fx.Option {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 10+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv[E]()),
		fx.Provide(func(e E) Environment { return e }),
		fx.Provide(func(e E) (*zap.Logger, error) { return NewLogger(e) }),
		fx.Provide(NewMux),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Supply(cfg.ServerConfig),
		fx.Provide(NewServer),
		fx.Provide(func(p runtimeProviderParams[E]) *Runtime[E] {
			return NewRuntime(p.Env, p.Mux, cfg.Registry)
		}),
		fx.Invoke(startServerHook),
	}...)

	return append(baseOpts, cfg.FxOptions...)
}

// NewApp creates a batteries-included gateway app with dependency injection.
//
// Example:
//
//	reg := tbgate.NewRegistryMap()
//	front.NewApp[Env](front.WithRegistry(reg)).Run()
func NewApp[E Environment](opts ...Option) *App {
	return &App{app: fx.New(FxOptions[E](opts...)...)}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() {
	a.app.Run()
}

// Start starts the application with the given context.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}
