package tbgate_test

import (
	"testing"

	"github.com/advdv/tbgate"
	"github.com/stretchr/testify/require"
)

func TestReverser(t *testing.T) {
	rev := tbgate.NewReverser()

	pat, err := rev.NamedPattern("instance", "GET /tensorboard_pro/{name}/{path...}")
	require.NoError(t, err)
	require.Equal(t, "GET /tensorboard_pro/{name}/{path...}", pat)

	loc, err := rev.Reverse("instance", "1", "data")
	require.NoError(t, err)
	require.Equal(t, "/tensorboard_pro/1/data", loc)
}

func TestReverseNoWildcards(t *testing.T) {
	rev := tbgate.NewReverser()
	_, err := rev.NamedPattern("metrics", "GET /metrics")
	require.NoError(t, err)

	loc, err := rev.Reverse("metrics")
	require.NoError(t, err)
	require.Equal(t, "/metrics", loc)
}

func TestReverseUnknownName(t *testing.T) {
	rev := tbgate.NewReverser()
	_, err := rev.Reverse("nope")
	require.ErrorContains(t, err, `no pattern named: "nope"`)
}

func TestReverseValueCountMismatch(t *testing.T) {
	rev := tbgate.NewReverser()
	_, err := rev.NamedPattern("blog", "GET /blog/{slug}")
	require.NoError(t, err)

	_, err = rev.Reverse("blog")
	require.ErrorContains(t, err, "no value left")

	_, err = rev.Reverse("blog", "a", "b")
	require.ErrorContains(t, err, "values left")
}

func TestNamedPatternDuplicate(t *testing.T) {
	rev := tbgate.NewReverser()
	_, err := rev.NamedPattern("dup", "/a")
	require.NoError(t, err)

	_, err = rev.NamedPattern("dup", "/b")
	require.ErrorContains(t, err, `pattern with name "dup" already exists`)
}

func TestNamedPatternMultiNotLast(t *testing.T) {
	rev := tbgate.NewReverser()
	_, err := rev.NamedPattern("bad", "/a/{rest...}/b")
	require.ErrorContains(t, err, "follows a multi wildcard")
}
