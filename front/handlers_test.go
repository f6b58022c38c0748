package front_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/advdv/tbgate"
	"github.com/advdv/tbgate/front"
	"github.com/advdv/tbgate/front/fronttest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMux(t *testing.T, baseURL string, reg tbgate.Registry) *front.Mux {
	t.Helper()

	mux := front.NewMux(zap.NewNop())
	front.RegisterRoutes(mux, zap.NewNop(), baseURL, reg)

	return mux
}

func echoRegistry(t *testing.T) *tbgate.RegistryMap {
	t.Helper()

	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.StaticApp(
		"200 OK", []tbgate.Header{{Name: "Content-Type", Value: "text/plain"}}, "hello"))))

	return reg
}

func TestInstanceProxying(t *testing.T) {
	mux := newTestMux(t, "/", echoRegistry(t))

	t.Run("registered instance is invoked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1/data", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		require.Equal(t, "hello", rec.Body.String())
	})

	t.Run("absent instance yields 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/2/data", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("post with empty sub path yields 403", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tensorboard_pro/1/", nil))

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestInstanceRootRedirect(t *testing.T) {
	mux := newTestMux(t, "/", echoRegistry(t))

	t.Run("without query", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1", nil))

		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "/tensorboard_pro/1/", rec.Header().Get("Location"))
	})

	t.Run("query preserved verbatim", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1?darkMode=true&a=b%20c", nil))

		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "/tensorboard_pro/1/?darkMode=true&a=b%20c", rec.Header().Get("Location"))
	})

	t.Run("redirects even for unregistered names", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/99", nil))

		require.Equal(t, http.StatusMovedPermanently, rec.Code)
		require.Equal(t, "/tensorboard_pro/99/", rec.Header().Get("Location"))
	})

	t.Run("post to root yields 403 regardless of registry", func(t *testing.T) {
		for _, name := range []string{"1", "99"} {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tensorboard_pro/"+name, nil))

			require.Equal(t, http.StatusForbidden, rec.Code, name)
		}
	})
}

func TestInstanceSubPath(t *testing.T) {
	var envs []tbgate.Environ

	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.RecordingApp(&envs))))

	mux := newTestMux(t, "/", reg)

	for _, tc := range []struct {
		url  string
		path string
	}{
		{"/tensorboard_pro/1/", "/"},
		{"/tensorboard_pro/1/data/plugins", "/data/plugins"},
		{"/tensorboard_pro/1/data/a%20b", "/data/a b"},
		{"/tensorboard_pro/1/data/a%2520b", "/data/a%20b"},
	} {
		envs = envs[:0]

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))

		require.Equal(t, http.StatusOK, rec.Code, tc.url)
		require.Len(t, envs, 1, tc.url)
		require.Equal(t, tc.path, envs[0].Path(), tc.url)
	}
}

func TestInstanceQueryAndBodyForwarded(t *testing.T) {
	var envs []tbgate.Environ

	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.RecordingApp(&envs))))

	mux := newTestMux(t, "/", reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1/data/runs?run=1&tag=loss", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envs, 1)
	require.Equal(t, "/data/runs", envs[0].Path())
	require.Equal(t, "run=1&tag=loss", envs[0].Query())
	require.Equal(t, http.MethodGet, envs[0].Method())
}

func TestResponseFidelity(t *testing.T) {
	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.StaticApp(
		"201 Created",
		[]tbgate.Header{
			{Name: "Set-Cookie", Value: "a=1"},
			{Name: "Set-Cookie", Value: "b=2"},
			{Name: "X-Extra", Value: "yes"},
		},
		"part1-", "part2"))))

	mux := newTestMux(t, "/", reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1/data", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"a=1", "b=2"}, rec.Header().Values("Set-Cookie"))
	require.Equal(t, "yes", rec.Header().Get("X-Extra"))
	require.Equal(t, "part1-part2", rec.Body.String())
}

func TestBackendErrorSurfacesAsStatus(t *testing.T) {
	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(tbgate.AppFunc(
		func(env tbgate.Environ, start tbgate.StartResponse) (tbgate.Body, error) {
			start("200 OK", nil)

			return tbgate.Body{}, tbgate.NewError(tbgate.CodeBadGateway,
				errors.New("backend raised mid-call"))
		}))))

	mux := newTestMux(t, "/", reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1/data", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestFontAssets(t *testing.T) {
	var envs []tbgate.Environ

	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.RecordingApp(&envs))))

	mux := newTestMux(t, "/", reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/font-roboto/roboto-v18-latin-regular.woff2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envs, 1)
	require.Equal(t, "/font-roboto/roboto-v18-latin-regular.woff2", envs[0].Path())
}

func TestFontAssetsWithoutFontInstance(t *testing.T) {
	mux := newTestMux(t, "/", tbgate.NewRegistryMap())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/font-roboto/roboto.woff2", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesUnderBasePath(t *testing.T) {
	var envs []tbgate.Environ

	reg := tbgate.NewRegistryMap()
	require.NoError(t, reg.Add("1", tbgate.InstanceOf(fronttest.RecordingApp(&envs))))

	mux := newTestMux(t, "/lab", reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lab/tensorboard_pro/1/data", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envs, 1)
	require.Equal(t, "/data", envs[0].Path())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lab/font-roboto/roboto.woff2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, envs, 2)
	require.Equal(t, "/font-roboto/roboto.woff2", envs[1].Path())
}

func TestFallbackRoutesWithoutRegistry(t *testing.T) {
	mux := newTestMux(t, "/", nil)

	for _, tc := range []struct {
		method string
		url    string
	}{
		{http.MethodGet, "/tensorboard_pro/1"},
		{http.MethodPost, "/tensorboard_pro/1"},
		{http.MethodGet, "/tensorboard_pro/1/data"},
		{http.MethodGet, "/font-roboto/roboto.woff2"},
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.url, nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.url)
	}
}

func TestInstanceMalformedPath(t *testing.T) {
	mux := newTestMux(t, "/", echoRegistry(t))

	req := httptest.NewRequest(http.MethodGet, "/tensorboard_pro/1/data", nil)
	req.URL = &url.URL{Path: "/tensorboard_pro/1/data/a b", RawPath: "/tensorboard_pro/1/data/a%zzb"}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
