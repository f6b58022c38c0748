package front

import (
	"context"
	"net/http"

	"github.com/advdv/tbgate"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey is the key type for context values.
type ctxKey int

const ctxKeyRequestDep ctxKey = iota

// requestDep holds request-scoped dependencies available via context.
// App-scoped dependencies (env, mux, registry) are accessed via Runtime instead.
type requestDep struct {
	logger *zap.Logger
}

// withRequestDep injects dependencies into the request context. Every request
// gets a fresh request_id field on its logger.
func withRequestDep(d *requestDep) tbgate.Middleware {
	return func(next tbgate.Handler) tbgate.Handler {
		return tbgate.HandlerFunc(func(w tbgate.ResponseWriter, r *http.Request) error {
			scoped := &requestDep{
				logger: d.logger.With(zap.String("request_id", uuid.NewString())),
			}

			ctx := context.WithValue(r.Context(), ctxKeyRequestDep, scoped)
			return next.ServeGate(w, r.WithContext(ctx))
		})
	}
}

func requestDepFromContext(ctx context.Context) *requestDep {
	d, ok := ctx.Value(ctxKeyRequestDep).(*requestDep)
	if !ok {
		panic("front: requestDep not found in context; is the middleware configured?")
	}
	return d
}

// WithLogger returns a context carrying the given logger, for unit tests that
// call handlers without the server middleware.
func WithLogger(ctx context.Context, logs *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyRequestDep, &requestDep{logger: logs})
}

// Log returns a trace-correlated zap logger from the context.
func Log(ctx context.Context) *zap.Logger {
	d := requestDepFromContext(ctx)
	return d.logger.With(traceFields(ctx)...)
}

// Span returns the current trace span from the context.
func Span(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// traceFields extracts trace_id and span_id from the context for log correlation.
func traceFields(ctx context.Context) []zap.Field {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	sc := span.SpanContext()
	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}
