// Package parallel implements the fixed-job-count worker-pool harness
// that drives every Monte-Carlo reducer. Each worker pulls from a
// shared jobs channel, accumulates into a thread-local value with no
// locks, and the result is merged by the caller once every worker is
// done — the same "worker-pool + reduce" pattern generalized here from
// pairwise similarity accumulation to a commutative-associative Raw
// accumulator.
package parallel

import (
	"runtime"
	"sync"
)

// RandomJobs is the fixed number of seeded jobs every computation is
// split into, regardless of the requested iteration count.
const RandomJobs = 1000

// Raw is a thread-local accumulator. Add must be commutative and
// associative: job-to-worker assignment and worker-to-collector merge
// order are both unspecified.
type Raw[T any] interface {
	Add(other T)
}

// Compute splits iter into RandomJobs jobs of ceil(iter/RandomJobs)
// iterations each, runs one worker per available hardware thread pulling
// job ids from a shared channel, and merges each worker's accumulator
// (built via builder, folded via runner) into a single result via Add.
// Returns the merged result and the effective iteration count actually
// executed (iterPerJob * RandomJobs), which is always >= iter.
func Compute[T Raw[T]](builder func() T, runner func(job uint64, iterPerJob uint64, acc T), iter uint64) (T, uint64) {
	iterPerJob := (iter + RandomJobs - 1) / RandomJobs
	effectiveIter := iterPerJob * RandomJobs

	jobs := make(chan uint64, RandomJobs)
	for j := uint64(0); j < RandomJobs; j++ {
		jobs <- j
	}
	close(jobs)

	nthreads := runtime.GOMAXPROCS(0)
	results := make(chan T, nthreads)

	var wg sync.WaitGroup
	wg.Add(nthreads)
	for w := 0; w < nthreads; w++ {
		go func() {
			defer wg.Done()
			acc := builder()
			for job := range jobs {
				runner(job, iterPerJob, acc)
			}
			results <- acc
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	total := builder()
	for r := range results {
		total.Add(r)
	}
	return total, effectiveIter
}
