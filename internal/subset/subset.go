// Package subset implements the subset builder: filter a canonical
// sample list by time period and metadata category, remap its surviving
// lemma strings to a dense id space local to the subset, and
// canonicalise the result into the numeric Sample shape the counters
// consume. The dense-id-remapping idiom (collect distinct keys, sort,
// assign indices in sorted order) is the same one used everywhere else
// in this codebase that needs a stable integer id space.
package subset

import (
	"sort"

	"types3go/internal/calcpoint"
	"types3go/internal/categories"
	"types3go/internal/errs"
	"types3go/internal/output"
	"types3go/internal/sample"
)

// Key identifies one subset: an optional metadata category restriction
// plus a half-open year period.
type Key struct {
	Category categories.Category
	Period   output.Years
}

// Name renders a Key the way log lines and error messages do.
func (k Key) Name() string {
	p := output.PrettyPeriod(k.Period)
	if !k.Category.IsSome() {
		return p
	}
	return p + ", " + k.Category.Key + " = " + k.Category.Value
}

// Subset is a Key plus its canonicalised samples, precomputed totals,
// and the set of child-subset endpoints to compare trajectories
// against (populated by the driver, not by Build).
type Subset struct {
	Key     Key
	Samples []sample.Sample
	TotalX  uint64
	TotalY  uint64
	Points  map[calcpoint.Point]struct{}
}

// AddPoint registers a child subset's observed endpoint for later
// compare-with-points evaluation against this subset's trajectory.
func (s *Subset) AddPoint(p calcpoint.Point) {
	if s.Points == nil {
		s.Points = make(map[calcpoint.Point]struct{})
	}
	s.Points[p] = struct{}{}
}

// SortedPoints returns the registered points in ascending (x, y) order,
// the form compare-with-points requires.
func (s *Subset) SortedPoints() []calcpoint.Point {
	pts := make([]calcpoint.Point, 0, len(s.Points))
	for p := range s.Points {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

// Build filters csamples down to the ones matching key, remaps their
// surviving lemma strings to dense ids, and canonicalises them into a
// Subset. Returns an InvalidInput error if the resulting total_x is
// zero.
func Build(key Key, csamples []sample.CSample, measureX output.MeasureX, measureY output.MeasureY, splitSamples bool) (*Subset, error) {
	var filtered []sample.CSample
	for _, cs := range csamples {
		if cs.Year < key.Period.Lo || cs.Year >= key.Period.Hi {
			continue
		}
		if !key.Category.Matches(cs.Metadata) {
			continue
		}
		filtered = append(filtered, cs)
	}

	lemmaIDs := assignLemmaIDs(filtered)

	var samples []sample.Sample
	if splitSamples {
		if measureX != output.MeasureXTokens {
			panic("subset.Build: split_samples requires MeasureX = Tokens")
		}
		samples = buildSplitSamples(filtered, lemmaIDs)
	} else {
		samples = buildBucketedSamples(filtered, lemmaIDs, measureX)
	}

	var totalX uint64
	for _, s := range samples {
		totalX += s.X
	}
	if totalX == 0 {
		return nil, errs.NewInvalidInput("subset %q has no tokens", key.Name())
	}

	totalY := computeTotalY(measureY, samples, filtered, lemmaIDs)

	return &Subset{Key: key, Samples: samples, TotalX: totalX, TotalY: totalY}, nil
}

// assignLemmaIDs collects the distinct lemma strings across filtered
// samples and assigns dense ids in lexicographic order.
func assignLemmaIDs(filtered []sample.CSample) map[string]int {
	seen := make(map[string]struct{})
	for _, cs := range filtered {
		for _, t := range cs.Tokens {
			seen[t.Lemma] = struct{}{}
		}
	}
	lemmas := make([]string, 0, len(seen))
	for l := range seen {
		lemmas = append(lemmas, l)
	}
	sort.Strings(lemmas)
	ids := make(map[string]int, len(lemmas))
	for i, l := range lemmas {
		ids[l] = i
	}
	return ids
}

func buildSplitSamples(filtered []sample.CSample, lemmaIDs map[string]int) []sample.Sample {
	var out []sample.Sample
	for _, cs := range filtered {
		for _, t := range cs.Tokens {
			markedCount := uint64(0)
			if t.Marked {
				markedCount = 1
			}
			out = append(out, sample.Sample{
				X:          1,
				TokenCount: 1,
				Tokens: []sample.SToken{
					{ID: lemmaIDs[t.Lemma], Count: 1, MarkedCount: markedCount},
				},
			})
		}
	}
	return out
}

func buildBucketedSamples(filtered []sample.CSample, lemmaIDs map[string]int, measureX output.MeasureX) []sample.Sample {
	out := make([]sample.Sample, 0, len(filtered))
	for _, cs := range filtered {
		counts := make(map[int]*sample.SToken)
		for _, t := range cs.Tokens {
			id := lemmaIDs[t.Lemma]
			st, ok := counts[id]
			if !ok {
				st = &sample.SToken{ID: id}
				counts[id] = st
			}
			st.Count++
			if t.Marked {
				st.MarkedCount++
			}
		}
		ids := make([]int, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		tokens := make([]sample.SToken, len(ids))
		var tokenCount uint64
		for i, id := range ids {
			tokens[i] = *counts[id]
			tokenCount += tokens[i].Count
		}
		x := tokenCount
		if measureX == output.MeasureXWords {
			x = cs.Words
		}
		out = append(out, sample.Sample{X: x, TokenCount: tokenCount, Tokens: tokens})
	}
	return out
}

func computeTotalY(measureY output.MeasureY, samples []sample.Sample, filtered []sample.CSample, lemmaIDs map[string]int) uint64 {
	switch measureY {
	case output.MeasureTypes:
		return uint64(len(lemmaIDs))
	case output.MeasureTokens:
		var n uint64
		for _, s := range samples {
			n += s.TokenCount
		}
		return n
	case output.MeasureSamples:
		return uint64(len(samples))
	case output.MeasureHapaxes:
		occurrences := make([]uint64, len(lemmaIDs))
		for _, cs := range filtered {
			for _, t := range cs.Tokens {
				occurrences[lemmaIDs[t.Lemma]]++
			}
		}
		var n uint64
		for _, c := range occurrences {
			if c == 1 {
				n++
			}
		}
		return n
	case output.MeasureMarkedTypes:
		marked := make([]bool, len(lemmaIDs))
		for _, cs := range filtered {
			for _, t := range cs.Tokens {
				if t.Marked {
					marked[lemmaIDs[t.Lemma]] = true
				}
			}
		}
		var n uint64
		for _, m := range marked {
			if m {
				n++
			}
		}
		return n
	default:
		panic("subset.computeTotalY: unknown measure")
	}
}
