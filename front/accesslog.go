package front

import (
	"net/http"
	"time"

	intervalexpr "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/advdv/tbgate"
	"go.uber.org/zap"
)

// withAccessLog logs one line per request. Statuses matching errorCodes are
// reported at error level, the rest at info.
func withAccessLog(errorCodes intervalexpr.Expression) tbgate.Middleware {
	return func(next tbgate.Handler) tbgate.Handler {
		return tbgate.HandlerFunc(func(w tbgate.ResponseWriter, r *http.Request) error {
			start := time.Now()
			err := next.ServeGate(w, r)

			status := statusOf(w, err)
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			logs := Log(r.Context())
			if errorCodes.Matches(status) {
				logs.Error("request", fields...)
			} else {
				logs.Info("request", fields...)
			}

			return err
		})
	}
}

// statusOf reports the status the client will observe: the buffered status
// when the handler succeeded, the error's code otherwise. The buffered status
// is not final for errors because the error layer resets the buffer.
func statusOf(w tbgate.ResponseWriter, err error) int {
	if err != nil {
		if code := tbgate.CodeOf(err); code != tbgate.CodeUnknown {
			return int(code)
		}
		return http.StatusInternalServerError
	}

	if sw, ok := w.(interface{ Status() int }); ok {
		return sw.Status()
	}

	return http.StatusOK
}
