package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePositiveForUppercaseCandidates(t *testing.T) {
	// Depends on the package init keying fzf's scoring tables; without
	// them every uppercase letter is classed as whitespace and scores 0.
	ix := New([]string{"Gmail"})
	assert.Positive(t, ix.score("Gmail", []rune("gmail")))
}

func TestQueryEmptyTextMeansNoFilter(t *testing.T) {
	ix := New([]string{"Gmail", "Bank"})

	// An empty query is "no filter": the caller shows the full catalog,
	// never an empty result view.
	assert.Nil(t, ix.Query("", 5, 0.25))
}

func TestQueryNoMatches(t *testing.T) {
	ix := New([]string{"Gmail", "Bank"})

	results := ix.Query("zzzzzqx", 5, 0.25)
	assert.Empty(t, results, "nothing clears the cutoff")
}

func TestQueryFindsCloseMatch(t *testing.T) {
	ix := New([]string{"Gmail", "Bank", "Steam"})

	results := ix.Query("gmal", 5, 0.25)
	assert.Contains(t, results, "Gmail")
	assert.NotContains(t, results, "Bank")
}

func TestQueryExactMatchRanksFirst(t *testing.T) {
	ix := New([]string{"Gmail Backup", "Gmail"})

	results := ix.Query("Gmail", 5, 0.25)
	if assert.NotEmpty(t, results) {
		assert.Equal(t, "Gmail", results[0])
	}
}

func TestQueryBoundsResults(t *testing.T) {
	ix := New([]string{"Account A", "Account B", "Account C", "Account D"})

	results := ix.Query("Account", 2, 0.25)
	assert.LessOrEqual(t, len(results), 2)
}

func TestQueryTiesKeepCandidateOrder(t *testing.T) {
	// Identical names up to the last character score identically; the
	// insertion order of the candidates breaks the tie.
	ix := New([]string{"Beta", "Bets"})

	results := ix.Query("Bet", 5, 0.25)
	assert.Equal(t, []string{"Beta", "Bets"}, results)
}

func TestQueryIsCaseInsensitive(t *testing.T) {
	ix := New([]string{"GMAIL"})

	results := ix.Query("gmail", 5, 0.25)
	assert.Equal(t, []string{"GMAIL"}, results)
}

func TestSetCandidates(t *testing.T) {
	ix := New([]string{"Gmail"})
	ix.SetCandidates([]string{"Bank"})

	assert.Empty(t, ix.Query("Gmail", 5, 0.5))
	assert.Equal(t, []string{"Bank"}, ix.Query("Bank", 5, 0.5))
}
