package utils

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRowsCoversEveryRowOnce(t *testing.T) {
	for _, tc := range []struct {
		height, parts int
	}{
		{1, 4}, {7, 3}, {10, 10}, {100, 8}, {5, 0},
	} {
		chunks := SplitRows(tc.height, tc.parts)
		next := 0
		for _, c := range chunks {
			assert.Equal(t, next, c.Start)
			assert.Greater(t, c.End, c.Start)
			next = c.End
		}
		assert.Equal(t, tc.height, next)
	}
	assert.Empty(t, SplitRows(0, 4))
}

func TestParallelRowsVisitsAllRows(t *testing.T) {
	var visited int64
	ParallelRows(1000, 4, func(c Chunk) {
		atomic.AddInt64(&visited, int64(c.End-c.Start))
	})
	assert.Equal(t, int64(1000), visited)
}

func TestExecuteWithMutexErrReturnsError(t *testing.T) {
	err := ExecuteWithMutexErr(func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
