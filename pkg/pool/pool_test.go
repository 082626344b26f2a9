package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/habedi/conflux/pkg/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_MapKeepsOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	var done atomic.Int64

	workerFunc := func(ctx context.Context, item int) (int, error) {
		time.Sleep(time.Duration(10-item) * time.Millisecond) // finish out of order
		return item * item, nil
	}

	outcomes := pool.Map(context.Background(), items, 3, workerFunc, func() { done.Add(1) })

	require.Len(t, outcomes, len(items))
	for i, o := range outcomes {
		assert.NoError(t, o.Err)
		assert.Equal(t, items[i]*items[i], o.Value)
	}
	assert.Equal(t, int64(len(items)), done.Load())
	assert.Empty(t, pool.Errors(outcomes))
}

func TestPool_CollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4}
	expectedErr := errors.New("worker failed")

	workerFunc := func(ctx context.Context, item int) (string, error) {
		if item%2 == 0 {
			return "", expectedErr
		}
		return "ok", nil
	}

	outcomes := pool.Map(context.Background(), items, 2, workerFunc, nil)
	errs := pool.Errors(outcomes)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], expectedErr)
	assert.ErrorIs(t, errs[1], expectedErr)
	assert.Equal(t, "ok", outcomes[0].Value)
	assert.ErrorIs(t, outcomes[1].Err, expectedErr)
}

func TestPool_EmptyItems(t *testing.T) {
	called := false
	workerFunc := func(ctx context.Context, item int) (int, error) {
		called = true
		return 0, nil
	}

	outcomes := pool.Map(context.Background(), []int{}, 5, workerFunc, nil)
	assert.Empty(t, outcomes)
	assert.False(t, called, "Worker should not be called with empty items")
}

func TestPool_NonPositiveWorkerCount(t *testing.T) {
	outcomes := pool.Map(context.Background(), []int{1, 2}, 0, func(ctx context.Context, item int) (int, error) {
		return item, nil
	}, nil)
	require.Len(t, outcomes, 2)
	assert.Equal(t, 2, outcomes[1].Value)
}
