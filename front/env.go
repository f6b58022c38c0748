package front

import (
	intervalexpr "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must
// implement. Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	baseURL() string
	authToken() string
	logLevel() zapcore.Level
	otelExporter() string
	errorStatusCodes() string
}

// BaseEnvironment contains the required gateway environment variables.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port        int    `env:"TBGATE_PORT,required"`
	ServiceName string `env:"TBGATE_SERVICE_NAME,required"`
	// BaseURL is the path prefix the host server mounts the gateway under.
	BaseURL string `env:"TBGATE_BASE_URL" envDefault:"/"`
	// AuthToken, when non-empty, is required on every request: via the
	// Authorization header, a token query parameter or the session cookie.
	AuthToken    string        `env:"TBGATE_AUTH_TOKEN"`
	LogLevel     zapcore.Level `env:"TBGATE_LOG_LEVEL" envDefault:"info"`
	OtelExporter string        `env:"TBGATE_OTEL_EXPORTER" envDefault:"stdout"`
	// ErrorStatusCodes selects which response codes the access log reports
	// at error level, as an integer interval expression like "500-599" or
	// "500,502-504".
	ErrorStatusCodes string `env:"TBGATE_ERROR_STATUS_CODES" envDefault:"500-599"`
}

func (e BaseEnvironment) port() int { return e.Port }

func (e BaseEnvironment) serviceName() string { return e.ServiceName }

func (e BaseEnvironment) baseURL() string { return e.BaseURL }

func (e BaseEnvironment) authToken() string { return e.AuthToken }

func (e BaseEnvironment) logLevel() zapcore.Level { return e.LogLevel }

func (e BaseEnvironment) otelExporter() string { return e.OtelExporter }

func (e BaseEnvironment) errorStatusCodes() string { return e.ErrorStatusCodes }

var _ Environment = BaseEnvironment{}

// DefaultRequiredErrorStatusCodes are the codes every error status expression
// must cover: 500 for unhandled handler errors and 503 for requests that
// arrive while the backend ecosystem is unavailable.
var DefaultRequiredErrorStatusCodes = []int{500, 503}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}

		if err := ValidateErrorStatusCodes(e.errorStatusCodes(), DefaultRequiredErrorStatusCodes...); err != nil {
			return e, err
		}

		return e, nil
	}
}

// ValidateErrorStatusCodes parses value as an integer interval expression and
// checks that every required status code matches it.
func ValidateErrorStatusCodes(value string, required ...int) error {
	expr, err := intervalexpr.ParseExpression(value)
	if err != nil {
		return errors.Wrapf(err, "invalid error status codes expression %q", value)
	}

	for _, code := range required {
		if !expr.Matches(code) {
			return errors.Newf("error status codes expression %q does not cover required code %d", value, code)
		}
	}

	return nil
}
