package tbgate_test

import (
	"testing"

	"github.com/advdv/tbgate"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	err1 := tbgate.NewError(tbgate.CodeBadRequest, errors.New("foo"))
	require.Equal(t, tbgate.Code(400), err1.Code())
	require.Equal(t, tbgate.CodeBadRequest, tbgate.CodeOf(err1))
	require.Equal(t, "Bad Request: foo", err1.Error())

	require.Equal(t, tbgate.CodeUnknown, tbgate.CodeOf(errors.New("bar")))
	require.Equal(t, "Unknown: rab", tbgate.NewError(900, errors.New("rab")).Error())
}

func TestErrorCodeOfWrapped(t *testing.T) {
	inner := tbgate.NewError(tbgate.CodeNotFound, errors.New("nope"))
	wrapped := errors.Wrap(inner, "while resolving")

	require.Equal(t, tbgate.CodeNotFound, tbgate.CodeOf(wrapped))
}
