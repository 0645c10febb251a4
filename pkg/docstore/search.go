package docstore

import (
	"fmt"
	"sort"
	"strings"
)

// Search scores every chunk in the store against the query and returns up to
// k results with score >= scoreThreshold, best first. The score is the sum of
// substring occurrence counts of each query token (tokens of one character
// are skipped) divided by the total number of query tokens. Ties keep store
// iteration order.
func (s *Store) Search(query string, k int, scoreThreshold float64) ([]SearchResult, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []SearchResult
	for _, docID := range s.order {
		for _, chunk := range s.docs[docID] {
			matches := countMatches(chunk.Content, tokens)
			score := float64(matches) / float64(len(tokens))
			if score >= scoreThreshold {
				results = append(results, SearchResult{Chunk: chunk, Score: score})
			}
		}
	}

	sortByScore(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// SearchInDocuments searches only the given document ids. Unlike Search,
// each chunk is scored by the raw token occurrence count (no normalization)
// and only positive scores are kept; the per-document top-k lists are merged
// and re-sorted before the global cut to k.
func (s *Store) SearchInDocuments(query string, documentIDs []string, k int) ([]SearchResult, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var merged []SearchResult
	for _, docID := range documentIDs {
		var perDoc []SearchResult
		for _, chunk := range s.docs[docID] {
			if score := countMatches(chunk.Content, tokens); score > 0 {
				perDoc = append(perDoc, SearchResult{Chunk: chunk, Score: float64(score)})
			}
		}
		sortByScore(perDoc)
		if len(perDoc) > k {
			perDoc = perDoc[:k]
		}
		merged = append(merged, perDoc...)
	}

	sortByScore(merged)
	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}

func tokenize(query string) ([]string, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: blank query", ErrEmptyInput)
	}
	return tokens, nil
}

// countMatches sums substring occurrences of each token in the lower-cased
// content. Single-character tokens are ignored.
func countMatches(content string, tokens []string) int {
	lower := strings.ToLower(content)
	matches := 0
	for _, token := range tokens {
		if len(token) <= 1 {
			continue
		}
		matches += strings.Count(lower, token)
	}
	return matches
}

func sortByScore(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
