package result

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_Success(t *testing.T) {
	res := Call(context.Background(), func(context.Context) (int, error) { return 42, nil })

	assert.Equal(t, StatusSuccess, res.Status())
	assert.True(t, res.Ok())
	assert.Equal(t, 42, res.Value())
	assert.Empty(t, res.Message())

	v, err := res.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCall_ErrorBecomesMessage(t *testing.T) {
	res := Call(context.Background(), func(context.Context) (string, error) {
		return "partial", errors.New("cart not found")
	})

	assert.Equal(t, StatusError, res.Status())
	assert.Equal(t, "cart not found", res.Message())
	assert.Empty(t, res.Value(), "no data is published alongside an error")
}

func TestCall_PanicIsRecovered(t *testing.T) {
	res := Call(context.Background(), func(context.Context) ([]int, error) {
		panic("boom")
	})

	assert.Equal(t, StatusError, res.Status())
	assert.Equal(t, "boom", res.Message())
	assert.Nil(t, res.Value())
}

func TestCall_NetworkErrorIsPrefixed(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	res := Call(context.Background(), func(context.Context) (int, error) {
		return 0, fmt.Errorf("execute request: %w", opErr)
	})

	assert.Equal(t, StatusError, res.Status())
	assert.Contains(t, res.Message(), "Network error: ")
	assert.Contains(t, res.Message(), "connection refused")
}

func TestFailure_BlankMessageReplaced(t *testing.T) {
	res := Failure[int]("   ")
	assert.Equal(t, unknownMessage, res.Message())

	res = Call(context.Background(), func(context.Context) (int, error) { return 0, errors.New("") })
	assert.Equal(t, unknownMessage, res.Message())
}

func TestLoading_UnwrapPending(t *testing.T) {
	res := Loading[string]()
	assert.Equal(t, StatusLoading, res.Status())
	assert.Equal(t, "loading", res.Status().String())

	_, err := res.Unwrap()
	assert.ErrorIs(t, err, ErrPending)
}

func TestDescribe_Nil(t *testing.T) {
	assert.Empty(t, Describe(nil))
}
