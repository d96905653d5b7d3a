package utils

import (
	"github.com/gammazero/workerpool"
)

// Chunk is a half-open range [Start, End) of rows.
type Chunk struct {
	Start, End int
}

// SplitRows divides height rows into at most parts contiguous chunks.
func SplitRows(height, parts int) []Chunk {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > height {
		parts = height
	}
	size := (height + parts - 1) / parts
	chunks := make([]Chunk, 0, parts)
	for start := 0; start < height; start += size {
		end := start + size
		if end > height {
			end = height
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}

// ParallelRows runs fn for every chunk of rows on a pool of workers and
// waits for all of them.
func ParallelRows(height, workers int, fn func(c Chunk)) {
	chunks := SplitRows(height, workers*4)
	if len(chunks) <= 1 || workers <= 1 {
		for _, c := range chunks {
			fn(c)
		}
		return
	}

	wp := workerpool.New(workers)
	for _, c := range chunks {
		c := c
		wp.Submit(func() {
			fn(c)
		})
	}
	wp.StopWait()
}
