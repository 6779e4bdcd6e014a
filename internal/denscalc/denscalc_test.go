package denscalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"types3go/internal/counter"
	"types3go/internal/density"
	"types3go/internal/sample"
)

func tk(id int, count uint64) sample.SToken {
	return sample.SToken{ID: id, Count: count}
}

func TestTraceOneStepsOnPreviousLevel(t *testing.T) {
	// Two samples, each contributing one new type: the curve should sit
	// at y=0 for the span of sample 0 (x in [0,1)) and y=1 for the span
	// of sample 1 (x in [1,2)), since the level held during a sample's
	// span is the count reached before it was consumed.
	samples := []sample.Sample{
		{X: 1, TokenCount: 1, Tokens: []sample.SToken{tk(0, 1)}},
		{X: 1, TokenCount: 1, Tokens: []sample.SToken{tk(1, 1)}},
	}
	totalTypes := sample.CountTypes(samples)
	c := counter.NewTypeCounter(totalTypes)
	acc := density.New()

	traceOne(samples, []int{0, 1}, c, acc)

	sums := acc.ToSums()
	require.Len(t, sums.Lines, 2)
	assert.Equal(t, density.Coord(1), sums.Lines[0].Y)
	assert.Equal(t, []density.SumPoint{{X: 0, Sum: 0}, {X: 2, Sum: 1}}, sums.Lines[0].Sums)
	assert.Equal(t, density.Coord(2), sums.Lines[1].Y)
	assert.Equal(t, []density.SumPoint{{X: 1, Sum: 0}, {X: 2, Sum: 1}}, sums.Lines[1].Sums)
}

func TestCountMergesAcrossIterations(t *testing.T) {
	samples := []sample.Sample{
		{X: 1, TokenCount: 1, Tokens: []sample.SToken{tk(0, 1)}},
		{X: 1, TokenCount: 1, Tokens: []sample.SToken{tk(1, 1)}},
	}
	sums, effIter := Count(samples, 10)
	assert.GreaterOrEqual(t, effIter, uint64(10))
	assert.Greater(t, sums.TotalPoints(), 0)
}
