// Package driver orchestrates the whole Monte-Carlo run: turning raw
// input samples into curves-by-period subsets, running the
// average-at-limit and compare-with-points reducers over each, and
// assembling the final Output. The parent-subset navigation follows a
// simple rule: a subset's time-parent keeps its category and widens to
// the full year span, its category-parent drops the category and keeps
// the period.
package driver

import (
	"fmt"
	"sort"

	"types3go/internal/calcavg"
	"types3go/internal/calcpoint"
	"types3go/internal/categories"
	"types3go/internal/errs"
	"types3go/internal/info"
	"types3go/internal/logging"
	"types3go/internal/output"
	"types3go/internal/sample"
	"types3go/internal/subset"
	"types3go/utils"
)

// Args is the full set of knobs types3-stat exposes on the command
// line.
type Args struct {
	Category        string
	MeasureY        output.MeasureY
	MeasureX        output.MeasureX
	Iter            uint64
	Offset          sample.Year
	Start           *sample.Year
	End             *sample.Year
	Window          sample.Year
	Step            sample.Year
	RestrictSamples categories.Category
	RestrictTokens  categories.Category
	MarkTokens      categories.Category
	SplitSamples    bool
}

// curve is one category slice (or the overall, uncategorised curve) and
// the ordered list of per-period subset keys that make it up.
type curve struct {
	category categories.Category
	keys     []subset.Key
}

// Calc holds every subset built for a run plus the precomputed curve
// layout, ready for calc to walk.
type Calc struct {
	args       Args
	log        *logging.Logger
	years      output.Years
	periods    []output.Years
	curves     []curve
	subsetMap  map[subset.Key]*subset.Subset
	subsetKeys []subset.Key // insertion order, for deterministic logging
}

// NewCalc filters isamples, builds the curve layout, and constructs
// every subset the run needs, registering parent/child comparison
// points along the way.
func NewCalc(args Args, isamples []sample.ISample, log *logging.Logger) (*Calc, error) {
	if log == nil {
		log = logging.New(0)
	}
	if args.Window <= 0 {
		return nil, errs.NewInvalidArgument("window must be positive, got %d", args.Window)
	}
	if args.Step <= 0 {
		return nil, errs.NewInvalidArgument("step must be positive, got %d", args.Step)
	}

	info.Statistics(log, isamples)
	csamples := filterSamples(args.RestrictSamples, args.RestrictTokens, args.MarkTokens, isamples)
	if len(csamples) == 0 {
		return nil, errs.NewInvalidInput("no samples survived filtering")
	}
	info.PostStatistics(log, csamples)

	lo, hi := yearsSpan(csamples)
	if args.Start != nil && *args.Start > lo {
		lo = *args.Start
	}
	if args.End != nil && *args.End < hi {
		hi = *args.End
	}
	years := output.Years{Lo: lo, Hi: hi}

	periods := getPeriods(args.Offset, args.Window, args.Step, years)
	log.Info("periods: %s", output.PrettyPeriods(periods))

	curves, err := buildCurves(args.Category, csamples)
	if err != nil {
		return nil, err
	}

	c := &Calc{
		args:    args,
		log:     log,
		years:   years,
		periods: periods,
		curves:  curves,
	}
	if err := c.buildSubsets(csamples); err != nil {
		return nil, err
	}
	if len(c.subsetMap) == 0 {
		return nil, errs.NewInvalidInput("every subset was empty, nothing to compute")
	}
	return c, nil
}

// getPeriods computes the sliding window of periods a run covers:
// starting at offset, advance by step until the window would cover the
// data's start, then emit consecutive [y, y+window) windows every step
// years until one reaches or passes the data's end.
func getPeriods(offset, window, step sample.Year, years output.Years) []output.Years {
	var periods []output.Years
	y := offset
	for y+step <= years.Lo {
		y += step
	}
	for {
		p := output.Years{Lo: y, Hi: y + window}
		periods = append(periods, p)
		if p.Hi >= years.Hi {
			break
		}
		y += step
	}
	return periods
}

// buildCurves lays out one curve per distinct value of the category
// key (sorted), or a single uncategorised curve when no key is given.
func buildCurves(categoryKey string, csamples []sample.CSample) ([]curve, error) {
	if categoryKey == "" {
		return []curve{{category: categories.None}}, nil
	}
	cats, err := categoriesFor(categoryKey, csamples)
	if err != nil {
		return nil, err
	}
	curves := make([]curve, len(cats))
	for i, cat := range cats {
		curves[i] = curve{category: cat}
	}
	return curves, nil
}

// buildSubsets builds every (curve, period) subset, skipping ones that
// come back zero-size, and registers each subset's endpoint as a
// comparison point on its time-parent and category-parent, building
// either parent lazily (on first reference) if it isn't already one of
// the curve's own subsets.
func (c *Calc) buildSubsets(csamples []sample.CSample) error {
	c.subsetMap = make(map[subset.Key]*subset.Subset)

	for ci := range c.curves {
		cur := &c.curves[ci]
		for _, period := range c.periods {
			key := subset.Key{Category: cur.category, Period: period}
			s, err := c.getOrBuildSubset(key, csamples)
			if err != nil {
				if _, ok := err.(*errs.InvalidInput); ok {
					c.log.Warn("skipping empty subset %q", key.Name())
					continue
				}
				return err
			}
			cur.keys = append(cur.keys, key)

			point := calcpoint.Point{X: s.TotalX, Y: s.TotalY}
			for _, pk := range c.getParents(key) {
				parent, err := c.getOrBuildSubset(pk, csamples)
				if err != nil {
					if _, ok := err.(*errs.InvalidInput); ok {
						c.log.Warn("skipping empty parent subset %q", pk.Name())
						continue
					}
					return err
				}
				parent.AddPoint(point)
			}
		}
	}
	return nil
}

// getOrBuildSubset returns key's already-built subset, building and
// registering it first if this is its first reference — a subset may be
// reached both as one of its curve's own (category, period) pairs and
// as another subset's time-parent or category-parent.
func (c *Calc) getOrBuildSubset(key subset.Key, csamples []sample.CSample) (*subset.Subset, error) {
	if s, ok := c.subsetMap[key]; ok {
		return s, nil
	}
	s, err := subset.Build(key, csamples, c.args.MeasureX, c.args.MeasureY, c.args.SplitSamples)
	if err != nil {
		return nil, err
	}
	c.subsetMap[key] = s
	c.subsetKeys = append(c.subsetKeys, key)
	return s, nil
}

// getParents returns the keys of key's time-parent (same category,
// full year span) and category-parent (no category, same period), in
// that order, skipping either that degenerates to key itself.
func (c *Calc) getParents(key subset.Key) []subset.Key {
	var parents []subset.Key
	timeParent := subset.Key{Category: key.Category, Period: c.years}
	if timeParent != key {
		parents = append(parents, timeParent)
	}
	if key.Category.IsSome() {
		catParent := subset.Key{Category: categories.None, Period: key.Period}
		if catParent != key {
			parents = append(parents, catParent)
		}
	}
	return parents
}

// sizeLimit returns the common X limit every average-at-limit call uses:
// the smallest total_x across every built subset, so every comparison
// is made at a size every curve actually reaches.
func (c *Calc) sizeLimit() uint64 {
	limit := ^uint64(0)
	for _, s := range c.subsetMap {
		if s.TotalX < limit {
			limit = s.TotalX
		}
	}
	return limit
}

// Calc runs the whole Monte-Carlo comparison and assembles the final
// Output. The accumulation phase is timed with utils.Timer and logged at
// debug level instead of printed to a report file.
func (c *Calc) Calc() output.Output {
	phase := utils.NewTimer()
	limit := c.sizeLimit()
	c.log.Info("size limit: %d", limit)

	out := output.Output{
		Periods:      c.periods,
		Years:        c.years,
		MeasureY:     c.args.MeasureY,
		MeasureX:     c.args.MeasureX,
		Iter:         c.args.Iter,
		Limit:        limit,
		SplitSamples: c.args.SplitSamples,
	}
	if c.args.RestrictSamples.IsSome() {
		out.RestrictSamples = toOCategory(c.args.RestrictSamples)
	}
	if c.args.RestrictTokens.IsSome() {
		out.RestrictTokens = toOCategory(c.args.RestrictTokens)
	}
	if c.args.MarkTokens.IsSome() {
		out.MarkTokens = toOCategory(c.args.MarkTokens)
	}

	for _, cur := range c.curves {
		out.Curves = append(out.Curves, c.calcCurve(cur, limit))
	}
	c.log.Debug("accumulation phase took %s", phase.Elapsed())
	return out
}

// calcCurve computes every period's result for one curve.
func (c *Calc) calcCurve(cur curve, limit uint64) output.OCurve {
	oc := output.OCurve{}
	if cur.category.IsSome() {
		oc.Category = toOCategory(cur.category)
	}
	for _, key := range cur.keys {
		oc.Results = append(oc.Results, c.calcOne(key, limit))
	}
	return oc
}

// calcOne computes the average-at-limit and both compare-with-points
// results (against the time-parent, and, for categorised curves,
// against the category-parent) for a single subset.
func (c *Calc) calcOne(key subset.Key, limit uint64) output.OResult {
	s := c.subsetMap[key]
	c.log.Debug("calculating %s", key.Name())

	avg := calcavg.AverageAtLimit(c.args.MeasureY, s.Samples, c.args.Iter, limit)

	timeParentKey := subset.Key{Category: key.Category, Period: c.years}
	vsTime := c.calcRelevant(s, timeParentKey)

	result := output.OResult{
		Period:         key.Period,
		AverageAtLimit: avg,
		VsTime:         vsTime,
	}

	if key.Category.IsSome() {
		catParentKey := subset.Key{Category: categories.None, Period: key.Period}
		vsCat := c.calcRelevant(s, catParentKey)
		result.VsCategories = &vsCat
	}
	return result
}

// calcRelevant runs compare-with-points for s's endpoint against
// parentKey's subset trajectory. When parentKey == s's own key (the
// subset is its own time-parent, i.e. it already spans the full
// range), the comparison is trivially s's own endpoint: above=below=0.
func (c *Calc) calcRelevant(s *subset.Subset, parentKey subset.Key) output.PointResult {
	parent, ok := c.subsetMap[parentKey]
	if !ok || parent == s {
		return output.PointResult{Iter: c.args.Iter}
	}
	points := parent.SortedPoints()
	if len(points) == 0 {
		return output.PointResult{Iter: c.args.Iter}
	}
	results := calcpoint.CompareWithPoints(c.args.MeasureY, parent.Samples, c.args.Iter, points)
	target := calcpoint.Point{X: s.TotalX, Y: s.TotalY}
	idx := sort.Search(len(points), func(i int) bool {
		if points[i].X != target.X {
			return points[i].X >= target.X
		}
		return points[i].Y >= target.Y
	})
	if idx == len(points) || points[idx] != target {
		panic(fmt.Sprintf("driver.calcRelevant: point %v not registered on parent %s", target, parentKey.Name()))
	}
	return results[idx]
}

func toOCategory(c categories.Category) *output.OCategory {
	return &output.OCategory{Key: c.Key, Value: c.Value}
}
