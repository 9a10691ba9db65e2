package parallel

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

func TestForEach_VisitsEveryTask(t *testing.T) {
	results := make([]int, 17)
	var calls int64

	err := ForEach(len(results), 4, func(i int) error {
		atomic.AddInt64(&calls, 1)
		results[i] = i * i
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(17), calls)
	for i, v := range results {
		assert.Equal(t, i*i, v)
	}
}

func TestForEach_ReturnsLowestIndexError(t *testing.T) {
	err := ForEach(8, 0, func(i int) error {
		if i == 5 || i == 2 {
			return fmt.Errorf("fold %d failed", i)
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, "fold 2 failed", err.Error())
}

func TestForEach_RecoversPanics(t *testing.T) {
	err := ForEach(3, 2, func(i int) error {
		if i == 1 {
			panic("boom")
		}
		return nil
	})

	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "task 1", panicErr.Operation)
}

func TestForEach_Empty(t *testing.T) {
	assert.NoError(t, ForEach(0, 4, func(int) error { panic("never called") }))
}

func TestForEachWithThreshold_Sequential(t *testing.T) {
	var order []int
	err := ForEachWithThreshold(5, 10, 4, func(i int) error {
		order = append(order, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
