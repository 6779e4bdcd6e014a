// Package density implements the density-curve accumulator used by the
// types3-calc tool: a sparse differential grid of step-curve segments
// (row y = curve level, columns = x spans), compacted into the minimal
// 2-D step function that represents the running sum at every (x, y)
// corner.
package density

import "sort"

// Coord is a grid coordinate (x or y axis).
type Coord = uint64

// Value is a signed accumulator value; differential cells can be negative.
type Value = int64

// CRange is a half-open [X0, X1) span on the x axis.
type CRange struct {
	X0, X1 Coord
}

// Counter is a sparse grid of per-row differential contributions. Row y
// holds, for each x where the running sum changes, the signed delta at
// that x. Rows allocate lazily as Add touches increasing y values,
// mirroring the reference implementation's resize-on-demand discipline.
type Counter struct {
	values []map[Coord]Value
}

// New returns an empty accumulator.
func New() *Counter {
	return &Counter{}
}

// Add records that v should be added to the running sum for all x in
// [xx.X0, xx.X1) on row y.
func (c *Counter) Add(y Coord, xx CRange, v Value) {
	if uint64(len(c.values)) <= y {
		grown := make([]map[Coord]Value, y+1)
		copy(grown, c.values)
		c.values = grown
	}
	row := c.values[y]
	if row == nil {
		row = make(map[Coord]Value)
		c.values[y] = row
	}
	row[xx.X0] += v
	row[xx.X1] -= v
}

// Merge folds other's contributions into c.
func (c *Counter) Merge(other *Counter) {
	if len(c.values) < len(other.values) {
		grown := make([]map[Coord]Value, len(other.values))
		copy(grown, c.values)
		c.values = grown
	}
	for y := range other.values {
		for x, v := range other.values[y] {
			if v == 0 {
				continue
			}
			if c.values[y] == nil {
				c.values[y] = make(map[Coord]Value)
			}
			c.values[y][x] += v
		}
	}
}

// RawPoint is one differential change to the running sum at x.
type RawPoint struct {
	X Coord
	V Value
}

// RawLine is the (sparse, sorted, zero-delta-free) differential row for
// one y value.
type RawLine struct {
	Y      Coord
	Values []RawPoint
}

// ToSumLine converts a differential row into its cumulative-sum form,
// valid for y+1 and above (a sample at exactly y does not yet count).
func (rl RawLine) ToSumLine() SumLine {
	return SumLine{Y: rl.Y + 1, Sums: cumSum(rl.Values)}
}

// RawLines is every nonempty differential row, plus the grid extent.
type RawLines struct {
	Ny, Nx Coord
	Lines  []RawLine
}

// ToSums converts every row to cumulative-sum form and merges each row
// with the row below it (in reverse y order), so that row i's sums
// represent every contribution at y >= lines[i].Y, not just row i's own
// differential entries.
func (rls RawLines) ToSums() Sums {
	lines := make([]SumLine, len(rls.Lines))
	for i, rl := range rls.Lines {
		lines[i] = rl.ToSumLine()
	}
	for i := len(lines) - 2; i >= 0; i-- {
		lines[i].Sums = addLines(lines[i].Sums, lines[i+1].Sums)
	}
	return Sums{Ny: rls.Ny, Nx: rls.Nx, Lines: lines}
}

// ToRawLines compacts the sparse grid into one sorted, zero-delta-free
// RawLine per nonempty row.
func (c *Counter) ToRawLines() RawLines {
	var ny, nx Coord
	var lines []RawLine
	for y := 0; y < len(c.values); y++ {
		row := c.values[y]
		values := make([]RawPoint, 0, len(row))
		for x, v := range row {
			if v == 0 {
				continue
			}
			values = append(values, RawPoint{X: x, V: v})
		}
		if len(values) == 0 {
			continue
		}
		sort.Slice(values, func(i, j int) bool { return values[i].X < values[j].X })
		yc := Coord(y)
		if yc+1 > ny {
			ny = yc + 1
		}
		if last := values[len(values)-1].X; last > nx {
			nx = last
		}
		lines = append(lines, RawLine{Y: yc, Values: values})
	}
	return RawLines{Ny: ny, Nx: nx, Lines: lines}
}

// ToSums compacts the grid directly into its cumulative-sum form.
func (c *Counter) ToSums() Sums {
	return c.ToRawLines().ToSums()
}

// cumSum turns a sorted, zero-delta-free differential row into running
// sums just below each x (the sum accumulated strictly before x).
func cumSum(a []RawPoint) []SumPoint {
	sums := make([]SumPoint, 0, len(a))
	var sum Value
	for _, p := range a {
		sums = append(sums, SumPoint{X: p.X, Sum: sum})
		sum += p.V
	}
	return sums
}

// pushOrChange appends v to r, collapsing it into the last entry when it
// shares an x or a sum with it — the redundant-point suppression that
// keeps the merged step function minimal.
func pushOrChange(r *[]SumPoint, v SumPoint) {
	if len(*r) == 0 {
		*r = append(*r, v)
		return
	}
	last := &(*r)[len(*r)-1]
	switch {
	case last.X == v.X:
		last.Sum = v.Sum
	case last.Sum == v.Sum:
		last.X = v.X
	default:
		*r = append(*r, v)
	}
}

// addLines merges two sorted SumPoint sequences, adding their sums at
// every breakpoint of either, and suppressing points the merge made
// redundant.
func addLines(a, b []SumPoint) []SumPoint {
	r := []SumPoint{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].X == b[j].X:
			pushOrChange(&r, SumPoint{X: a[i].X, Sum: a[i].Sum + b[j].Sum})
			i++
			j++
		case a[i].X < b[j].X:
			pushOrChange(&r, SumPoint{X: a[i].X, Sum: a[i].Sum + b[j].Sum})
			i++
		default:
			pushOrChange(&r, SumPoint{X: b[j].X, Sum: a[i].Sum + b[j].Sum})
			j++
		}
	}
	for ; i < len(a); i++ {
		pushOrChange(&r, a[i])
	}
	for ; j < len(b); j++ {
		pushOrChange(&r, b[j])
	}
	return r
}

// SumPoint is the running sum strictly below x, for one horizontal
// slice of the compacted grid.
type SumPoint struct {
	X   Coord `json:"x"`
	Sum Value `json:"sum"`
}

// SumLine is the compacted running-sum row valid from y onward.
type SumLine struct {
	Y    Coord      `json:"y"`
	Sums []SumPoint `json:"sums"`
}

// Sums is the fully compacted 2-D step function.
type Sums struct {
	Ny    Coord     `json:"ny"`
	Nx    Coord     `json:"nx"`
	Lines []SumLine `json:"lines"`
}

// TotalPoints returns the number of (x, sum) breakpoints across every
// row, a size metric that types3-calc reports in its log output.
func (s Sums) TotalPoints() int {
	n := 0
	for _, l := range s.Lines {
		n += len(l.Sums)
	}
	return n
}

// Accumulator adapts Counter to the parallel package's thread-local Raw
// contract (Add, not Merge), so the Monte-Carlo density-curve tool can
// drive internal/parallel the same way the averaging reducers do.
type Accumulator struct {
	*Counter
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{Counter: New()}
}

// Add merges other's contributions into a, commutatively and
// associatively.
func (a *Accumulator) Add(other *Accumulator) {
	a.Counter.Merge(other.Counter)
}
