package libutil

import (
	"runtime"
	"sync"
)

// ForEachRow calls fn once for every row in [0, height), spread over
// the given number of workers. workers <= 0 uses one worker per cpu,
// workers == 1 runs on the calling goroutine in row order.
//
// fn must only write state owned by its row.
func ForEachRow(height, workers int, fn func(y int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = MinI(workers, height)

	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}

	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				fn(y)
			}
		}()
	}
	wg.Wait()
}
