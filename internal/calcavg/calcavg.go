// Package calcavg implements the average-at-limit reducer: the (low,
// high) Y-value when the cumulative X first reaches a limit L, summed
// over many random permutations; dividing by the iteration count gives
// the average.
package calcavg

import (
	"types3go/internal/counter"
	"types3go/internal/output"
	"types3go/internal/parallel"
	"types3go/internal/sample"
	"types3go/internal/shuffle"
)

// AverageAtLimit runs iter Monte-Carlo permutations of samples and
// returns the (low, high) Y bound at the first sample whose cumulative X
// reaches or crosses limit, summed over every executed permutation,
// together with that effective iteration count. Panics if limit > total X
// across samples — that is a programmer error, never a condition the
// caller should recover from.
func AverageAtLimit(measure output.MeasureY, samples []sample.Sample, iter uint64, limit uint64) output.AvgResult {
	sample.VerifySamples(samples)
	totalTypes := sample.CountTypes(samples)
	cm := toCounterMeasure(measure)

	builder := func() *rawResult { return &rawResult{} }
	runner := func(job uint64, iterPerJob uint64, acc *rawResult) {
		c := counter.New(cm, totalTypes)
		shuffle.Job(len(samples), job, iterPerJob, func(idx []int) {
			calcOne(samples, limit, idx, c, acc)
		})
	}

	r, effIter := parallel.Compute(builder, runner, iter)
	return output.AvgResult{Low: r.low, High: r.high, Iter: effIter}
}

func toCounterMeasure(m output.MeasureY) counter.Measure {
	switch m {
	case output.MeasureTypes:
		return counter.TypesMeasure
	case output.MeasureTokens:
		return counter.TokensMeasure
	case output.MeasureHapaxes:
		return counter.HapaxesMeasure
	case output.MeasureSamples:
		return counter.SamplesMeasure
	case output.MeasureMarkedTypes:
		return counter.MarkedTypesMeasure
	default:
		panic("calcavg: unknown measure")
	}
}

func calcOne(samples []sample.Sample, limit uint64, idx []int, c counter.Counter, result *rawResult) {
	c.Reset()
	for _, i := range idx {
		s := c.FeedSample(samples[i])
		switch {
		case s.X < limit:
			continue
		case s.X == limit:
			result.low += s.Y
			result.high += s.Y
			return
		default: // s.X > limit
			result.low += s.LowY
			result.high += s.HighY
			return
		}
	}
	panic("calcavg.calcOne: limit exceeds total x of samples")
}

type rawResult struct {
	low  uint64
	high uint64
}

func (r *rawResult) Add(other *rawResult) {
	r.low += other.low
	r.high += other.high
}
