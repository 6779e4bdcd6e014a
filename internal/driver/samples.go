package driver

import (
	"sort"

	"types3go/internal/categories"
	"types3go/internal/errs"
	"types3go/internal/sample"
)

// filterSamples applies restrictSamples/restrictTokens and annotates
// surviving tokens with the mark-tokens category, turning ISamples into
// CSamples.
func filterSamples(restrictSamples, restrictTokens, markTokens categories.Category, isamples []sample.ISample) []sample.CSample {
	out := make([]sample.CSample, 0, len(isamples))
	for _, is := range isamples {
		if !restrictSamples.Matches(is.Metadata) {
			continue
		}
		tokens := make([]sample.CToken, 0, len(is.Tokens))
		for _, it := range is.Tokens {
			if !restrictTokens.Matches(it.Metadata) {
				continue
			}
			tokens = append(tokens, sample.CToken{
				Lemma:  it.Lemma,
				Marked: markTokens.Matches(it.Metadata),
			})
		}
		out = append(out, sample.CSample{
			Year:     is.Year,
			Metadata: is.Metadata,
			Words:    is.Words,
			Tokens:   tokens,
		})
	}
	return out
}

// yearsSpan returns the half-open [min(year), max(year)+1) span across
// samples. Callers must ensure samples is non-empty.
func yearsSpan(samples []sample.CSample) (lo, hi sample.Year) {
	lo, hi = samples[0].Year, samples[0].Year+1
	for _, s := range samples[1:] {
		if s.Year < lo {
			lo = s.Year
		}
		if s.Year+1 > hi {
			hi = s.Year + 1
		}
	}
	return lo, hi
}

// categoriesFor returns the sorted distinct values of metadata key
// across samples, each wrapped as a present Category. Fails if the key
// is absent from every sample.
func categoriesFor(key string, samples []sample.CSample) ([]categories.Category, error) {
	seen := make(map[string]struct{})
	for _, s := range samples {
		if v, ok := s.Metadata[key]; ok {
			seen[v] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, errs.NewInvalidInput("category key %q not present in any sample", key)
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	cats := make([]categories.Category, len(values))
	for i, v := range values {
		cats[i] = categories.Some(key, v)
	}
	return cats, nil
}
