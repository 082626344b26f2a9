package pool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/habedi/conflux/pkg/pool"
	"github.com/stretchr/testify/assert"
)

func TestPool_CancelStopsEnqueue(t *testing.T) {
	items := make([]int, 1000)
	for i := range items {
		items[i] = i
	}
	ctx, cancel := context.WithCancel(context.Background())
	var processed int64

	worker := func(ctx context.Context, i int) (struct{}, error) {
		atomic.AddInt64(&processed, 1)
		if i == 0 {
			cancel()
		}
		select {
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		case <-time.After(1 * time.Millisecond):
		}
		return struct{}{}, nil
	}

	outcomes := pool.Map(ctx, items, 8, worker, nil)
	if atomic.LoadInt64(&processed) >= int64(len(items)) {
		t.Fatalf("expected fewer items processed after cancel, got %d", processed)
	}
	// every item not processed reports the cancellation
	assert.ErrorIs(t, outcomes[len(outcomes)-1].Err, context.Canceled)
}
