package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"types3go/internal/sample"
)

func tok(lemma, key, value string) sample.IToken {
	return sample.IToken{Lemma: lemma, Metadata: map[string]string{key: value}}
}

func TestApplyTokensKeep(t *testing.T) {
	samples := []sample.ISample{
		{ID: "s1", Metadata: map[string]string{}, Tokens: []sample.IToken{
			tok("cat", "pos", "noun"), tok("run", "pos", "verb"),
		}},
	}
	r := Restriction{How: Keep, What: Tokens, Selection: Selection{Key: "pos", Values: []string{"noun"}}}
	out := Apply([]Restriction{r}, samples)
	require.Len(t, out, 1)
	require.Len(t, out[0].Tokens, 1)
	assert.Equal(t, "cat", out[0].Tokens[0].Lemma)
}

func TestApplyTokensRemove(t *testing.T) {
	samples := []sample.ISample{
		{ID: "s1", Tokens: []sample.IToken{
			tok("cat", "pos", "noun"), tok("run", "pos", "verb"),
		}},
	}
	r := Restriction{How: Remove, What: Tokens, Selection: Selection{Key: "pos", Values: []string{"noun"}}}
	out := Apply([]Restriction{r}, samples)
	require.Len(t, out[0].Tokens, 1)
	assert.Equal(t, "run", out[0].Tokens[0].Lemma)
}

func TestApplySamplesKeepDropsNonMatching(t *testing.T) {
	samples := []sample.ISample{
		{ID: "s1", Metadata: map[string]string{"genre": "prose"}},
		{ID: "s2", Metadata: map[string]string{"genre": "verse"}},
	}
	r := Restriction{How: Keep, What: Samples, Selection: Selection{Key: "genre", Values: []string{"prose"}}}
	out := Apply([]Restriction{r}, samples)
	require.Len(t, out, 1)
	assert.Equal(t, "s1", out[0].ID)
}

func TestApplyMissingKeyNeverMatches(t *testing.T) {
	samples := []sample.ISample{
		{ID: "s1", Metadata: map[string]string{"genre": "prose"}},
	}
	keepR := Restriction{How: Keep, What: Samples, Selection: Selection{Key: "author", Values: []string{"x"}}}
	assert.Empty(t, Apply([]Restriction{keepR}, samples))

	removeR := Restriction{How: Remove, What: Samples, Selection: Selection{Key: "author", Values: []string{"x"}}}
	assert.Len(t, Apply([]Restriction{removeR}, samples), 1)
}

func TestApplyStacksRestrictionsInOrder(t *testing.T) {
	samples := []sample.ISample{
		{ID: "s1", Metadata: map[string]string{"genre": "prose", "lang": "en"}},
		{ID: "s2", Metadata: map[string]string{"genre": "prose", "lang": "fr"}},
		{ID: "s3", Metadata: map[string]string{"genre": "verse", "lang": "en"}},
	}
	restrictions := []Restriction{
		{How: Keep, What: Samples, Selection: Selection{Key: "genre", Values: []string{"prose"}}},
		{How: Keep, What: Samples, Selection: Selection{Key: "lang", Values: []string{"en"}}},
	}
	out := Apply(restrictions, samples)
	require.Len(t, out, 1)
	assert.Equal(t, "s1", out[0].ID)
}

func TestSummarize(t *testing.T) {
	samples := []sample.ISample{
		{Tokens: []sample.IToken{tok("a", "k", "v"), tok("b", "k", "v")}},
		{Tokens: []sample.IToken{tok("c", "k", "v")}},
	}
	nsamples, ntokens := Summarize(samples)
	assert.Equal(t, 2, nsamples)
	assert.Equal(t, 3, ntokens)
}

func TestKeyCountsAndValueCounts(t *testing.T) {
	samples := []sample.ISample{
		{Metadata: map[string]string{"genre": "prose"}},
		{Metadata: map[string]string{"genre": "prose"}},
		{Metadata: map[string]string{"genre": "verse"}},
	}
	keys := KeyCounts(samples, Samples)
	require.Len(t, keys, 1)
	assert.Equal(t, "genre", keys[0].Value)
	assert.Equal(t, 3, keys[0].N)

	values := ValueCounts(samples, Samples, "genre")
	require.Len(t, values, 2)
	assert.Equal(t, Count{Value: "prose", N: 2}, values[0])
	assert.Equal(t, Count{Value: "verse", N: 1}, values[1])
}
