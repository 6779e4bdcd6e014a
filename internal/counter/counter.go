// Package counter implements the five per-permutation running-total
// state machines driven by the shuffle harness. The seen-array
// allocate-once, reset-by-overwrite discipline is preserved verbatim
// since it's the single most performance-sensitive decision in the
// hot loop.
package counter

import "types3go/internal/sample"

// State is what a Counter emits after consuming one Sample.
type State struct {
	X     uint64
	Y     uint64
	LowY  uint64
	HighY uint64
}

// Counter is the capability set every Y-measure variant implements:
// allocate for a fixed type-id space, reset between permutations, and
// fold in one Sample at a time.
type Counter interface {
	Reset()
	FeedSample(s sample.Sample) State
}

// New builds the Counter variant for the given Y-measure, sized for
// totalTypes distinct type ids.
func New(measure Measure, totalTypes int) Counter {
	switch measure {
	case TypesMeasure:
		return NewTypeCounter(totalTypes)
	case TokensMeasure:
		return NewTokenCounter()
	case HapaxesMeasure:
		return NewHapaxCounter(totalTypes)
	case SamplesMeasure:
		return NewSampleCounter()
	case MarkedTypesMeasure:
		return NewTypeRatioCounter(totalTypes)
	default:
		panic("counter.New: unknown measure")
	}
}

// Measure mirrors output.MeasureY without importing it, to keep this
// package free of a dependency on the JSON-facing output shapes; calcavg
// and calcpoint map output.MeasureY to these constants at the boundary.
type Measure int

const (
	TypesMeasure Measure = iota
	TokensMeasure
	HapaxesMeasure
	SamplesMeasure
	MarkedTypesMeasure
)

// TypeCounter tracks the distinct type ids seen so far.
type TypeCounter struct {
	x     uint64
	types uint64
	seen  []bool
}

func NewTypeCounter(totalTypes int) *TypeCounter {
	return &TypeCounter{seen: make([]bool, totalTypes)}
}

func (c *TypeCounter) Reset() {
	c.x = 0
	c.types = 0
	for i := range c.seen {
		c.seen[i] = false
	}
}

func (c *TypeCounter) FeedSample(s sample.Sample) State {
	prev := c.types
	for _, t := range s.Tokens {
		if !c.seen[t.ID] {
			c.types++
			c.seen[t.ID] = true
		}
	}
	c.x += s.X
	return State{X: c.x, Y: c.types, LowY: prev, HighY: c.types}
}

// TokenCounter tracks the total number of tokens consumed; monotone.
type TokenCounter struct {
	x      uint64
	tokens uint64
}

func NewTokenCounter() *TokenCounter {
	return &TokenCounter{}
}

func (c *TokenCounter) Reset() {
	c.x = 0
	c.tokens = 0
}

func (c *TokenCounter) FeedSample(s sample.Sample) State {
	prev := c.tokens
	c.x += s.X
	c.tokens += s.TokenCount
	return State{X: c.x, Y: c.tokens, LowY: prev, HighY: c.tokens}
}

// SampleCounter tracks the number of samples consumed; monotone.
type SampleCounter struct {
	x       uint64
	samples uint64
}

func NewSampleCounter() *SampleCounter {
	return &SampleCounter{}
}

func (c *SampleCounter) Reset() {
	c.x = 0
	c.samples = 0
}

func (c *SampleCounter) FeedSample(s sample.Sample) State {
	prev := c.samples
	c.x += s.X
	c.samples++
	return State{X: c.x, Y: c.samples, LowY: prev, HighY: c.samples}
}

// HapaxCounter tracks types currently seen exactly once. Non-monotone:
// a type can leave the hapax set within the very sample that pushed it
// in, so the intra-sample envelope (low_y, high_y) is the achievable
// bound assuming, respectively, all losses-before-gains and all
// gains-before-losses within the sample.
type HapaxCounter struct {
	x       uint64
	hapaxes uint64
	seen    []uint8 // 0 unseen, 1 singleton, 2 multi
}

func NewHapaxCounter(totalTypes int) *HapaxCounter {
	return &HapaxCounter{seen: make([]uint8, totalTypes)}
}

func (c *HapaxCounter) Reset() {
	c.x = 0
	c.hapaxes = 0
	for i := range c.seen {
		c.seen[i] = 0
	}
}

func (c *HapaxCounter) FeedSample(s sample.Sample) State {
	var gain, lose uint64
	for _, t := range s.Tokens {
		if t.Count == 1 {
			switch c.seen[t.ID] {
			case 0:
				gain++
				c.seen[t.ID] = 1
			case 1:
				lose++
				c.seen[t.ID] = 2
			}
		} else {
			switch c.seen[t.ID] {
			case 0:
				gain++
				lose++
				c.seen[t.ID] = 2
			case 1:
				lose++
				c.seen[t.ID] = 2
			}
		}
	}
	c.x += s.X
	prevY := c.hapaxes
	c.hapaxes += gain
	c.hapaxes -= lose
	curY := c.hapaxes
	lowY := saturatingSub(prevY, lose)
	highY := prevY + gain
	return State{X: c.x, Y: curY, LowY: lowY, HighY: highY}
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// TypeRatioCounter redefines the X axis to the running count of distinct
// types seen (regardless of marking), and the Y axis to the running
// count of distinct *marked* types.
type TypeRatioCounter struct {
	types       uint64
	typesMarked uint64
	seen        []bool
	seenMarked  []bool
}

func NewTypeRatioCounter(totalTypes int) *TypeRatioCounter {
	return &TypeRatioCounter{
		seen:       make([]bool, totalTypes),
		seenMarked: make([]bool, totalTypes),
	}
}

func (c *TypeRatioCounter) Reset() {
	c.types = 0
	c.typesMarked = 0
	for i := range c.seen {
		c.seen[i] = false
	}
	for i := range c.seenMarked {
		c.seenMarked[i] = false
	}
}

func (c *TypeRatioCounter) FeedSample(s sample.Sample) State {
	prev := c.typesMarked
	for _, t := range s.Tokens {
		if !c.seen[t.ID] {
			c.types++
			c.seen[t.ID] = true
		}
		if t.MarkedCount > 0 && !c.seenMarked[t.ID] {
			c.typesMarked++
			c.seenMarked[t.ID] = true
		}
	}
	return State{X: c.types, Y: c.typesMarked, LowY: prev, HighY: c.typesMarked}
}

// CountXY runs a fresh Counter of the given measure over samples in
// order (no shuffling) and returns the final (x, y). Useful for exact
// corpus totals (e.g. subset.total_y) without any Monte-Carlo sampling.
func CountXY(measure Measure, samples []sample.Sample) (uint64, uint64) {
	n := sample.CountTypes(samples)
	c := New(measure, n)
	var last State
	any := false
	for _, s := range samples {
		last = c.FeedSample(s)
		any = true
	}
	if !any {
		return 0, 0
	}
	return last.X, last.Y
}
