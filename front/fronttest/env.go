package fronttest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [front.BaseEnvironment] env
// vars via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets all [front.BaseEnvironment] env vars to sensible test
// defaults. Port is required because each test must use a unique port to
// avoid collisions.
//
// Defaults:
//   - TBGATE_SERVICE_NAME: "test"
//   - TBGATE_BASE_URL: "/"
//   - TBGATE_OTEL_EXPORTER: "none"
//   - TBGATE_ERROR_STATUS_CODES: "500-599"
//
// Use the returned [Env] to override individual values:
//
//	fronttest.SetBaseEnv(t, 18085).BaseURL("/lab").AuthToken("s3cret")
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("TBGATE_PORT", strconv.Itoa(port))
	t.Setenv("TBGATE_SERVICE_NAME", "test")
	t.Setenv("TBGATE_BASE_URL", "/")
	t.Setenv("TBGATE_OTEL_EXPORTER", "none")
	t.Setenv("TBGATE_ERROR_STATUS_CODES", "500-599")
	return &Env{t: t}
}

// ServiceName overrides TBGATE_SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("TBGATE_SERVICE_NAME", name)
	return e
}

// BaseURL overrides TBGATE_BASE_URL.
func (e *Env) BaseURL(base string) *Env {
	e.t.Helper()
	e.t.Setenv("TBGATE_BASE_URL", base)
	return e
}

// AuthToken overrides TBGATE_AUTH_TOKEN.
func (e *Env) AuthToken(token string) *Env {
	e.t.Helper()
	e.t.Setenv("TBGATE_AUTH_TOKEN", token)
	return e
}

// LogLevel overrides TBGATE_LOG_LEVEL.
func (e *Env) LogLevel(level string) *Env {
	e.t.Helper()
	e.t.Setenv("TBGATE_LOG_LEVEL", level)
	return e
}

// ErrorStatusCodes overrides TBGATE_ERROR_STATUS_CODES.
func (e *Env) ErrorStatusCodes(expr string) *Env {
	e.t.Helper()
	e.t.Setenv("TBGATE_ERROR_STATUS_CODES", expr)
	return e
}
