// Package front provides a batteries-included server for exposing synchronous
// TensorBoard-style backends through the tbgate gateway.
//
// # Overview
//
// front handles the boilerplate around the core gateway: environment parsing,
// structured logging, OpenTelemetry tracing, access logging, token and xsrf
// protection, route registration and graceful shutdown. A complete gateway
// can be created in a single call:
//
//	reg := tbgate.NewRegistryMap()
//	front.NewApp[Env](front.WithRegistry(reg)).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    front.BaseEnvironment
//	    LogDirRoot string `env:"LOGDIR_ROOT,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable                  | Required | Default | Description                               |
//	|---------------------------|----------|---------|-------------------------------------------|
//	| TBGATE_PORT               | Yes      | -       | Port the HTTP server listens on           |
//	| TBGATE_SERVICE_NAME       | Yes      | -       | Service name for logging and tracing      |
//	| TBGATE_BASE_URL           | No       | /       | Path prefix the gateway is mounted under  |
//	| TBGATE_AUTH_TOKEN         | No       | -       | Access token; empty disables the check    |
//	| TBGATE_LOG_LEVEL          | No       | info    | Log level (debug, info, warn, error)      |
//	| TBGATE_OTEL_EXPORTER      | No       | stdout  | Trace exporter: "stdout" or "none"        |
//	| TBGATE_ERROR_STATUS_CODES | No       | 500-599 | Statuses the access log reports as errors |
//
// # Routing
//
// The gateway serves three route families below TBGATE_BASE_URL:
//
//   - GET/POST /tensorboard_pro/{name}: the instance root; GET redirects to
//     the slash-terminated form, POST is refused.
//   - /tensorboard_pro/{name}/{path...}: proxied into the named backend
//     instance with the instance-relative sub-path.
//   - GET /font-roboto/{path...}: shared font assets, served through the
//     font instance.
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be
// injected into constructors via fx:
//
//   - [Runtime.Env] returns the typed environment configuration
//   - [Runtime.Reverse] generates URLs for named routes
//   - [Runtime.Registry] returns the instance registry
//
// # Context
//
// Request handlers access request-scoped values through package-level
// functions:
//
//   - [Log] - trace-correlated zap logger with a per-request request_id
//   - [Span] - current OpenTelemetry span for custom instrumentation
//
// # Security
//
// When TBGATE_AUTH_TOKEN is set every request must present it, via the
// Authorization header ("token <value>"), a token query parameter or the
// session cookie. Unsafe methods additionally pass an xsrf check: the
// double-submit cookie by default, with a same-origin referer fallback for
// POSTs so token-less backend frontends keep working. Override the primary
// check with [WithXSRFCheck] to delegate to a host session layer.
//
// # Testing
//
// The companion [fronttest] package constructs the identical dependency
// graph through fxtest and provides helpers for calling handlers directly:
//
//	fronttest.SetBaseEnv(t, 18081)
//	app := fronttest.New[front.BaseEnvironment](t, front.WithRegistry(reg))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package front
