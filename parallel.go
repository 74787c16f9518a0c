package oasloc

import (
	"context"
	"sync"
)

// runParallel executes fn for every locale using at most workers
// goroutines and returns the results in input order. Locale pipelines
// share nothing but immutable inputs, so no coordination beyond the
// worker pool is needed.
func runParallel(ctx context.Context, locales []string, workers int, fn func(context.Context, string) LocaleResult) []LocaleResult {
	results := make([]LocaleResult, len(locales))
	if len(locales) == 0 {
		return results
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(locales) {
		workers = len(locales)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, locales[i])
			}
		}()
	}

	for i := range locales {
		select {
		case <-ctx.Done():
			// Remaining locales are marked cancelled rather than
			// silently dropped.
			for j := i; j < len(locales); j++ {
				results[j] = LocaleResult{Locale: locales[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}
