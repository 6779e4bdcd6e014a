package calcpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"types3go/internal/counter"
	"types3go/internal/output"
	"types3go/internal/sample"
)

const testIter = 100000

func st(id int, count uint64) sample.SToken {
	return sample.SToken{ID: id, Count: count}
}

func stm(id int, count, markedCount uint64) sample.SToken {
	return sample.SToken{ID: id, Count: count, MarkedCount: markedCount}
}

func pt(x, y uint64) Point {
	return Point{X: x, Y: y}
}

func newResult(n int) *rawResult {
	return &rawResult{elems: make([]rawElem, n)}
}

func TestCalcOneTokens(t *testing.T) {
	samples := []sample.Sample{
		{X: 1234, TokenCount: 10, Tokens: []sample.SToken{st(0, 10)}},
		{X: 5678, TokenCount: 5, Tokens: []sample.SToken{st(0, 5)}},
	}

	t.Run("below all", func(t *testing.T) {
		c := counter.NewTokenCounter()
		points := []Point{pt(0, 0), pt(1, 0), pt(1233, 0), pt(1234, 0), pt(1235, 0), pt(1234+5678, 0)}
		result := newResult(len(points))
		calcOne(samples, points, []int{0, 1}, c, result)
		assert.Equal(t, []rawElem{{0, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}}, result.elems)
	})

	t.Run("at x=0 with y>0 is above immediately", func(t *testing.T) {
		c := counter.NewTokenCounter()
		points := []Point{pt(0, 7), pt(1, 7), pt(1233, 7), pt(1234, 7), pt(1235, 7), pt(1234+5678, 7)}
		result := newResult(len(points))
		calcOne(samples, points, []int{0, 1}, c, result)
		assert.Equal(t, []rawElem{{1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}}, result.elems)
	})

	t.Run("reversed idx, all above", func(t *testing.T) {
		c := counter.NewTokenCounter()
		points := []Point{pt(1, 7), pt(1233, 7), pt(1234, 7), pt(1235, 7), pt(1234+5678, 16)}
		result := newResult(len(points))
		calcOne(samples, points, []int{1, 0}, c, result)
		assert.Equal(t, []rawElem{{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0}}, result.elems)
	})

	t.Run("identity idx, mixed above/below", func(t *testing.T) {
		c := counter.NewTokenCounter()
		points := []Point{pt(1, 7), pt(1233, 7), pt(1234, 7), pt(1235, 7), pt(1234+5678, 16)}
		result := newResult(len(points))
		calcOne(samples, points, []int{0, 1}, c, result)
		assert.Equal(t, []rawElem{{0, 0}, {0, 0}, {0, 1}, {0, 1}, {1, 0}}, result.elems)
	})

	t.Run("points exceeding total x panics", func(t *testing.T) {
		c := counter.NewTokenCounter()
		points := []Point{pt(1, 7), pt(1233, 7), pt(1234, 7), pt(1235, 7), pt(1234+5678, 16), pt(1234+5678+1, 16)}
		result := newResult(len(points))
		assert.Panics(t, func() {
			calcOne(samples, points, []int{1, 0}, c, result)
		})
	})
}

func TestCalcOneTypes(t *testing.T) {
	samples := []sample.Sample{
		{X: 1234, TokenCount: 10, Tokens: []sample.SToken{st(0, 10)}},
		{X: 5678, TokenCount: 5, Tokens: []sample.SToken{st(0, 5)}},
	}
	c := counter.NewTypeCounter(sample.CountTypes(samples))
	points := []Point{pt(1, 0), pt(1233, 0), pt(1234, 0), pt(1235, 0), pt(1234+5678, 2)}
	result := newResult(len(points))
	calcOne(samples, points, []int{0, 1}, c, result)
	assert.Equal(t, []rawElem{{0, 0}, {0, 0}, {0, 1}, {0, 1}, {1, 0}}, result.elems)
}

func TestCompareWithPointsTokens(t *testing.T) {
	samples := []sample.Sample{{X: 1234, TokenCount: 10, Tokens: []sample.SToken{st(0, 10)}}}

	t.Run("always below last point", func(t *testing.T) {
		points := []Point{pt(1, 7), pt(1233, 7), pt(1234, 7)}
		result := CompareWithPoints(output.MeasureTokens, samples, testIter, points)
		require.Len(t, result, 3)
		assert.Equal(t, output.PointResult{Above: 0, Below: 0, Iter: testIter}, result[0])
		assert.Equal(t, output.PointResult{Above: 0, Below: 0, Iter: testIter}, result[1])
		assert.Equal(t, output.PointResult{Above: 0, Below: testIter, Iter: testIter}, result[2])
	})

	t.Run("always above every point", func(t *testing.T) {
		points := []Point{pt(1, 11), pt(1233, 11), pt(1234, 11)}
		result := CompareWithPoints(output.MeasureTokens, samples, testIter, points)
		for _, r := range result {
			assert.Equal(t, output.PointResult{Above: testIter, Below: 0, Iter: testIter}, r)
		}
	})

	t.Run("unsorted points panics", func(t *testing.T) {
		points := []Point{pt(1, 11), pt(1234, 11), pt(1233, 11)}
		assert.Panics(t, func() {
			CompareWithPoints(output.MeasureTokens, samples, testIter, points)
		})
	})

	t.Run("point beyond total x panics", func(t *testing.T) {
		points := []Point{pt(1, 11), pt(1233, 11), pt(1235, 11)}
		assert.Panics(t, func() {
			CompareWithPoints(output.MeasureTokens, samples, testIter, points)
		})
	})
}

func TestCompareWithPointsTypeRatio(t *testing.T) {
	samples := []sample.Sample{
		{X: 0, TokenCount: 2, Tokens: []sample.SToken{st(0, 1), stm(1, 1, 1)}},
	}
	points := []Point{
		pt(1, 0), pt(1, 1), pt(1, 2), pt(1, 3),
		pt(2, 0), pt(2, 1), pt(2, 2), pt(2, 3),
	}
	result := CompareWithPoints(output.MeasureMarkedTypes, samples, testIter, points)
	require.Len(t, result, 8)
	assert.Equal(t, output.PointResult{Above: 0, Below: 0, Iter: testIter}, result[0])
	assert.Equal(t, output.PointResult{Above: 0, Below: 0, Iter: testIter}, result[1])
	assert.Equal(t, output.PointResult{Above: testIter, Below: 0, Iter: testIter}, result[2])
	assert.Equal(t, output.PointResult{Above: testIter, Below: 0, Iter: testIter}, result[3])
	assert.Equal(t, output.PointResult{Above: 0, Below: testIter, Iter: testIter}, result[4])
	assert.Equal(t, output.PointResult{Above: 0, Below: 0, Iter: testIter}, result[5])
	assert.Equal(t, output.PointResult{Above: testIter, Below: 0, Iter: testIter}, result[6])
	assert.Equal(t, output.PointResult{Above: testIter, Below: 0, Iter: testIter}, result[7])
}
