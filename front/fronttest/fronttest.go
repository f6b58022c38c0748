// Package fronttest provides test helpers for front applications.
//
// It constructs the identical DI graph as [front.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	fronttest.SetBaseEnv(t, 18081)
//	app := fronttest.New[front.BaseEnvironment](t, front.WithRegistry(reg))
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package fronttest

import (
	"testing"

	"github.com/advdv/tbgate/front"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing front applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [front.NewApp].
func New[E front.Environment](t testing.TB, opts ...front.Option) *App {
	return &App{App: fxtest.New(t, front.FxOptions[E](opts...)...)}
}
