// Package calcpoint implements the compare-with-points reducer: for
// each of a sorted set of target (x, y) points, the number of random
// permutations whose trajectory passes strictly below the point (the
// point lies above the curve) or strictly above it (the point lies below
// the curve).
package calcpoint

import (
	"sort"

	"types3go/internal/counter"
	"types3go/internal/output"
	"types3go/internal/parallel"
	"types3go/internal/sample"
	"types3go/internal/shuffle"
)

// Point is one target coordinate on the accumulation curve.
type Point struct {
	X uint64
	Y uint64
}

// CompareWithPoints runs iter Monte-Carlo permutations of samples and, for
// each of points (which must be sorted by (X, Y) and non-empty), returns
// how many permutations' trajectories passed below it (Above: the point
// is above the curve) and above it (Below). Panics if the last point's X
// exceeds the samples' total X for the measure.
func CompareWithPoints(measure output.MeasureY, samples []sample.Sample, iter uint64, points []Point) []output.PointResult {
	sample.VerifySamples(samples)
	if len(points) == 0 {
		panic("calcpoint.CompareWithPoints: points must not be empty")
	}
	if !sort.SliceIsSorted(points, func(i, j int) bool {
		if points[i].X != points[j].X {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	}) {
		panic("calcpoint.CompareWithPoints: points must be sorted")
	}

	totalTypes := sample.CountTypes(samples)
	cm := toCounterMeasure(measure)
	if totalX, _ := counter.CountXY(cm, samples); points[len(points)-1].X > totalX {
		panic("calcpoint.CompareWithPoints: points exceed total x of samples")
	}

	builder := func() *rawResult {
		return &rawResult{elems: make([]rawElem, len(points))}
	}
	runner := func(job uint64, iterPerJob uint64, acc *rawResult) {
		c := counter.New(cm, totalTypes)
		shuffle.Job(len(samples), job, iterPerJob, func(idx []int) {
			calcOne(samples, points, idx, c, acc)
		})
	}

	r, effIter := parallel.Compute(builder, runner, iter)

	results := make([]output.PointResult, len(points))
	for i, e := range r.elems {
		results[i] = output.PointResult{Above: e.above, Below: e.below, Iter: effIter}
	}
	return results
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
		panic("calcpoint: unknown measure")
	}
}

// calcOne walks one permutation's trajectory once against the sorted
// points, classifying each point in turn as the trajectory passes it.
// Points with x == 0 are resolved before any sample is consumed, since a
// counter's state before the first FeedSample is always (x=0, y=0).
func calcOne(samples []sample.Sample, points []Point, idx []int, c counter.Counter, result *rawResult) {
	c.Reset()
	j := 0
	for points[j].X == 0 {
		if points[j].Y > 0 {
			result.elems[j].above++
		}
		j++
		if j == len(points) {
			return
		}
	}
samples:
	for _, i := range idx {
		s := c.FeedSample(samples[i])
		for {
			p := points[j]
			switch {
			case s.X < p.X:
				continue samples
			case s.X == p.X:
				if s.Y < p.Y {
					result.elems[j].above++
				} else if s.Y > p.Y {
					result.elems[j].below++
				}
			default: // s.X > p.X
				if s.HighY < p.Y {
					result.elems[j].above++
				} else if s.LowY > p.Y {
					result.elems[j].below++
				}
			}
			j++
			if j == len(points) {
				return
			}
		}
	}
	panic("calcpoint.calcOne: points exceed total x of samples")
}

type rawElem struct {
	above uint64
	below uint64
}

type rawResult struct {
	elems []rawElem
}

func (r *rawResult) Add(other *rawResult) {
	for i := range r.elems {
		r.elems[i].above += other.elems[i].above
		r.elems[i].below += other.elems[i].below
	}
}
