package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"types3go/internal/categories"
	"types3go/internal/output"
	"types3go/internal/sample"
)

func ct(lemma string, marked bool) sample.CToken {
	return sample.CToken{Lemma: lemma, Marked: marked}
}

func TestBuildFiltersByPeriodAndCategory(t *testing.T) {
	csamples := []sample.CSample{
		{Year: 1900, Words: 2, Metadata: map[string]string{"genre": "prose"}, Tokens: []sample.CToken{ct("cat", false), ct("dog", false)}},
		{Year: 1950, Words: 1, Metadata: map[string]string{"genre": "verse"}, Tokens: []sample.CToken{ct("cat", false)}},
		{Year: 1960, Words: 1, Metadata: map[string]string{"genre": "prose"}, Tokens: []sample.CToken{ct("fox", false)}},
	}
	key := Key{Category: categories.Some("genre", "prose"), Period: output.Years{Lo: 1900, Hi: 1960}}
	subset, err := Build(key, csamples, output.MeasureXTokens, output.MeasureTypes, false)
	require.NoError(t, err)
	require.Len(t, subset.Samples, 1)
	assert.Equal(t, uint64(2), subset.TotalX)
	assert.Equal(t, uint64(2), subset.TotalY)
}

func TestBuildBucketsRepeatedLemmasWithinSample(t *testing.T) {
	csamples := []sample.CSample{
		{Year: 2000, Words: 5, Tokens: []sample.CToken{ct("a", false), ct("b", true), ct("a", true)}},
	}
	key := Key{Period: output.Years{Lo: 2000, Hi: 2001}}
	subset, err := Build(key, csamples, output.MeasureXTokens, output.MeasureMarkedTypes, false)
	require.NoError(t, err)
	require.Len(t, subset.Samples, 1)
	s := subset.Samples[0]
	assert.Equal(t, uint64(3), s.TokenCount)
	assert.Equal(t, uint64(3), s.X)
	require.Len(t, s.Tokens, 2)
	assert.Equal(t, 0, s.Tokens[0].ID) // "a" sorts first
	assert.Equal(t, uint64(2), s.Tokens[0].Count)
	assert.Equal(t, uint64(1), s.Tokens[0].MarkedCount)
	assert.Equal(t, 1, s.Tokens[1].ID) // "b"
	assert.Equal(t, uint64(1), s.Tokens[1].Count)
	assert.Equal(t, uint64(1), s.Tokens[1].MarkedCount)
	assert.Equal(t, uint64(2), subset.TotalY) // both "a" and "b" have a marked occurrence
}

func TestBuildWordsMeasureUsesSampleWords(t *testing.T) {
	csamples := []sample.CSample{
		{Year: 2000, Words: 42, Tokens: []sample.CToken{ct("a", false)}},
	}
	key := Key{Period: output.Years{Lo: 2000, Hi: 2001}}
	subset, err := Build(key, csamples, output.MeasureXWords, output.MeasureTokens, false)
	require.NoError(t, err)
	require.Len(t, subset.Samples, 1)
	assert.Equal(t, uint64(42), subset.Samples[0].X)
	assert.Equal(t, uint64(42), subset.TotalX)
	assert.Equal(t, uint64(1), subset.TotalY)
}

func TestBuildSplitSamplesOneTokenPerSample(t *testing.T) {
	csamples := []sample.CSample{
		{Year: 2000, Words: 2, Tokens: []sample.CToken{ct("a", false), ct("a", true)}},
	}
	key := Key{Period: output.Years{Lo: 2000, Hi: 2001}}
	subset, err := Build(key, csamples, output.MeasureXTokens, output.MeasureHapaxes, true)
	require.NoError(t, err)
	require.Len(t, subset.Samples, 2)
	for _, s := range subset.Samples {
		assert.Equal(t, uint64(1), s.X)
		assert.Equal(t, uint64(1), s.TokenCount)
		require.Len(t, s.Tokens, 1)
	}
	assert.Equal(t, uint64(0), subset.TotalY) // "a" occurs twice, not a hapax
}

func TestBuildZeroSizeSubsetFails(t *testing.T) {
	key := Key{Period: output.Years{Lo: 2000, Hi: 2001}}
	_, err := Build(key, nil, output.MeasureXTokens, output.MeasureTypes, false)
	assert.Error(t, err)
}

func TestKeyName(t *testing.T) {
	withCat := Key{Category: categories.Some("genre", "prose"), Period: output.Years{Lo: 1900, Hi: 1910}}
	assert.Equal(t, "1900-1909, genre = prose", withCat.Name())

	noCat := Key{Period: output.Years{Lo: 1900, Hi: 1910}}
	assert.Equal(t, "1900-1909", noCat.Name())
}
