// Package denscalc runs the standalone density-curve computation: many
// random permutations of a numeric Sample list, each traced as a
// type-accumulation step curve and folded into a single
// internal/density.Sums grid.
package denscalc

import (
	"types3go/internal/counter"
	"types3go/internal/density"
	"types3go/internal/parallel"
	"types3go/internal/sample"
	"types3go/internal/shuffle"
)

// Count runs iter Monte-Carlo permutations of samples, tracing the
// type-accumulation curve (internal/counter.TypeCounter) of each and
// merging every trajectory into one density grid. Returns the compacted
// Sums and the effective iteration count actually executed.
func Count(samples []sample.Sample, iter uint64) (density.Sums, uint64) {
	sample.VerifySamples(samples)
	totalTypes := sample.CountTypes(samples)

	builder := func() *density.Accumulator { return density.NewAccumulator() }
	runner := func(job uint64, iterPerJob uint64, acc *density.Accumulator) {
		c := counter.NewTypeCounter(totalTypes)
		shuffle.Job(len(samples), job, iterPerJob, func(idx []int) {
			traceOne(samples, idx, c, acc.Counter)
		})
	}

	acc, effIter := parallel.Compute(builder, runner, iter)
	return acc.ToSums(), effIter
}

// traceOne replays one permutation and records its step curve: the level
// the curve sits at while consuming sample i is the Y value reached by the
// sample before it, held over that sample's x span.
func traceOne(samples []sample.Sample, idx []int, c *counter.TypeCounter, acc *density.Counter) {
	c.Reset()
	var prevX, prevY uint64
	for _, i := range idx {
		state := c.FeedSample(samples[i])
		acc.Add(prevY, density.CRange{X0: prevX, X1: state.X}, 1)
		prevX, prevY = state.X, state.Y
	}
}
