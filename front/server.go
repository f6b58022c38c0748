package front

import (
	"context"
	"fmt"
	"net/http"
	"time"

	intervalexpr "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/advdv/tbgate"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerConfig holds optional configuration for the HTTP server.
type ServerConfig struct {
	// Registry is the instance table the gateway routes against. Nil routes
	// everything to the unavailability fallback.
	Registry tbgate.Registry
	// XSRFCheck overrides the default double-submit cookie check.
	XSRFCheck XSRFCheck
}

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Mux        *Mux
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates an HTTP server with all middleware and routing
// configured. There are no read or write timeouts: a backend invocation
// blocks for as long as the backend computes, and cutting the connection
// under it would discard a response that was already paid for.
func NewServer(params ServerParams, cfg ServerConfig) (*http.Server, error) {
	errorCodes, err := intervalexpr.ParseExpression(params.Env.errorStatusCodes())
	if err != nil {
		return nil, errors.Wrap(err, "parse error status codes")
	}

	d := &requestDep{logger: params.Logger}

	params.Mux.Use(withRequestDep(d))
	params.Mux.Use(withAccessLog(errorCodes))
	params.Mux.Use(WithAuth(params.Env.authToken()))
	params.Mux.Use(WithXSRF(cfg.XSRFCheck))

	RegisterRoutes(params.Mux, params.Logger, params.Env.baseURL(), cfg.Registry)

	handler := withTracing(params.TracerProv, params.Propagator, params.Env.serviceName())(params.Mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", params.Env.port()),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

// startServerHook registers lifecycle hooks for the HTTP server.
func startServerHook(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting server", zap.String("addr", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return server.Shutdown(ctx)
		},
	})
}
