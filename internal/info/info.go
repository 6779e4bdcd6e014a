// Package info logs pre- and post-filter corpus statistics: sample,
// token, and distinct-lemma counts, plus the set of observed metadata
// key/value pairs. It's cheap, non-Monte-Carlo logging the driver emits
// on every run.
package info

import (
	"sort"
	"strings"

	"types3go/internal/logging"
	"types3go/internal/sample"
)

// Statistics logs corpus-wide counts over the raw input samples, before
// any restriction or marking is applied.
func Statistics(log *logging.Logger, samples []sample.ISample) {
	lemmas := make(map[string]struct{})
	sampleMetadata := make(map[string]map[string]struct{})
	tokenMetadata := make(map[string]map[string]struct{})
	var tokenCount int

	for _, s := range samples {
		for k, v := range s.Metadata {
			addMetadata(sampleMetadata, k, v)
		}
		for _, t := range s.Tokens {
			tokenCount++
			lemmas[t.Lemma] = struct{}{}
			for k, v := range t.Metadata {
				addMetadata(tokenMetadata, k, v)
			}
		}
	}

	log.Info("before filtering: samples: %d", len(samples))
	log.Info("before filtering: tokens: %d", tokenCount)
	log.Info("before filtering: distinct lemmas: %d", len(lemmas))
	log.Info("sample metadata categories: %s", explainMetadata(sampleMetadata))
	log.Info("token metadata categories: %s", explainMetadata(tokenMetadata))
}

// PostStatistics logs corpus-wide counts over the canonicalised samples,
// after restriction and marking, including how much of the corpus ended
// up marked.
func PostStatistics(log *logging.Logger, samples []sample.CSample) {
	lemmas := make(map[string]struct{})
	markedLemmas := make(map[string]struct{})
	var tokenCount, markedTokenCount int

	for _, s := range samples {
		for _, t := range s.Tokens {
			tokenCount++
			lemmas[t.Lemma] = struct{}{}
			if t.Marked {
				markedTokenCount++
				markedLemmas[t.Lemma] = struct{}{}
			}
		}
	}

	log.Info("after filtering: samples: %d", len(samples))
	log.Info("after filtering: tokens: %d, marked: %d", tokenCount, markedTokenCount)
	log.Info("after filtering: distinct lemmas: %d, marked: %d", len(lemmas), len(markedLemmas))
}

func addMetadata(m map[string]map[string]struct{}, k, v string) {
	vv, ok := m[k]
	if !ok {
		vv = make(map[string]struct{})
		m[k] = vv
	}
	vv[v] = struct{}{}
}

// explainMetadata renders "k1 = v1, v2; k2 = v3", keys and values both
// sorted.
func explainMetadata(m map[string]map[string]struct{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		values := make([]string, 0, len(m[k]))
		for v := range m[k] {
			values = append(values, v)
		}
		sort.Strings(values)
		parts[i] = k + " = " + strings.Join(values, ", ")
	}
	return strings.Join(parts, "; ")
}
