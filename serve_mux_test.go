package tbgate_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/tbgate"
	"github.com/stretchr/testify/require"
)

func serveBlogPost(w tbgate.ResponseWriter, r *http.Request) error {
	fmt.Fprintf(w, `hello %v, %s`, r.Context().Value("foo"), r.PathValue("slug"))
	return nil
}

func middleware1(next tbgate.Handler) tbgate.Handler {
	return tbgate.HandlerFunc(func(w tbgate.ResponseWriter, r *http.Request) error {
		return next.ServeGate(w, r.WithContext(context.WithValue(r.Context(), "foo", "bar"))) //nolint:staticcheck
	})
}

func TestServeMux(t *testing.T) {
	mux := tbgate.NewServeMux()
	mux.Use(middleware1)
	mux.HandleFunc("GET /blog/{slug}", serveBlogPost, "blog_post")

	loc, err := mux.Reverse("blog_post", "foo")
	require.NoError(t, err)
	require.Equal(t, `/blog/foo`, loc)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blog/111", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `hello bar, 111`, rec.Body.String())
}

func TestHandleStd(t *testing.T) {
	stdHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "std:%s", r.URL.Path)
	})

	mux := tbgate.NewServeMux()
	mux.HandleStd("GET /std", stdHandler)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/std", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "std:/std", rec.Body.String())
}

func TestHandleStdErrorOwnership(t *testing.T) {
	stdHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "custom error", http.StatusTeapot)
	})

	mux := tbgate.NewServeMux()
	mux.HandleStd("GET /teapot", stdHandler)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "custom error\n", rec.Body.String())
}

func TestHandleStdMiddlewareApplied(t *testing.T) {
	mux := tbgate.NewServeMux()
	mux.Use(middleware1)
	mux.HandleStd("GET /std", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "val:%v", r.Context().Value("foo")) //nolint:staticcheck
	}))

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/std", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "val:bar", rec.Body.String())
}

func TestUseAfterHandle(t *testing.T) {
	mux := tbgate.NewServeMux()
	mux.HandleFunc("GET /blog/{slug}", serveBlogPost, "blog_post")
	require.PanicsWithValue(t, "tbgate: cannot call Use() after calling Handle", func() {
		mux.Use(middleware1)
	})
}
