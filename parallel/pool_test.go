package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		pool := Start(workers)

		var sum atomic.Int64
		for i := range 100 {
			pool.Do(func() { sum.Add(int64(i)) })
		}
		pool.Wait()
		pool.Wait()

		assert.Equal(t, int64(4950), sum.Load(), "workers=%d", workers)
	}
}

func TestPoolSerial(t *testing.T) {
	pool := Start(1)

	var order []int
	for i := range 5 {
		pool.Do(func() { order = append(order, i) })
	}
	pool.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
