// Package search ranks account names against a typed query using fzf's
// fuzzy matching algorithm.
package search

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab sizes match fzf's own defaults.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// The algo package keeps its character-class and bonus tables empty until
// Init populates them for a scoring scheme; scoring without this yields 0
// for any candidate with an uppercase letter.
func init() {
	algo.Init("default")
}

// Index holds the candidate name set in its natural (insertion) order,
// which is also the tie-break order for equally scored matches.
type Index struct {
	candidates []string
	slab       *util.Slab
}

// New builds an index over the given candidates.
func New(candidates []string) *Index {
	return &Index{
		candidates: append([]string(nil), candidates...),
		slab:       util.MakeSlab(slab16Size, slab32Size),
	}
}

// SetCandidates replaces the candidate set, keeping the given order.
func (ix *Index) SetCandidates(candidates []string) {
	ix.candidates = append(ix.candidates[:0:0], candidates...)
}

// Query returns the best maxResults candidates for text, best match first.
// Scores are normalised against the pattern's self-match score so cutoff is
// a similarity in [0,1]; candidates scoring below cutoff are excluded.
//
// An empty text means "no filter": Query returns nil and the caller must
// show the unfiltered catalog, not an empty result view.
func (ix *Index) Query(text string, maxResults int, cutoff float64) []string {
	if text == "" {
		return nil
	}
	pattern := []rune(strings.ToLower(text))

	// The best possible score for this pattern is the pattern matching
	// itself; candidate scores are scaled against it.
	self := ix.score(text, pattern)
	if self <= 0 {
		return nil
	}

	type match struct {
		name  string
		score int
	}
	var matches []match
	for _, candidate := range ix.candidates {
		score := ix.score(candidate, pattern)
		if float64(score)/float64(self) >= cutoff && score > 0 {
			matches = append(matches, match{name: candidate, score: score})
		}
	}

	// Stable sort keeps candidate order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	results := make([]string, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.name)
	}
	return results
}

func (ix *Index) score(text string, pattern []rune) int {
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, ix.slab)
	return result.Score
}
