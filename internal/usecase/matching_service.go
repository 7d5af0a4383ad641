package usecase

import "strings"

// Scoring weights
const (
	NameContainsWeight   = 10 // Full query is a substring of the product name
	HandleContainsWeight = 8  // Full query is a substring of the handle
	NameTokenWeight      = 2  // Per query token found in the name
	HandleTokenWeight    = 1  // Per query token found in the handle
	MinTokenLength       = 3  // Shorter tokens are connectors ("de", "la") and score nothing

	browseScore = 1
)

// Query is a normalized search term with its scoring tokens precomputed, so a
// catalog scan tokenizes once instead of once per candidate.
type Query struct {
	text   string
	tokens []string
}

// NewQuery normalizes raw user input into a Query.
func NewQuery(raw string) Query {
	return parseQuery(Normalize(raw))
}

func parseQuery(normalized string) Query {
	return Query{text: normalized, tokens: scoringTokens(normalized)}
}

// Text returns the normalized query.
func (q Query) Text() string { return q.text }

// IsEmpty reports whether the query has no searchable text (browse mode).
func (q Query) IsEmpty() bool { return q.text == "" }

// Score rates a candidate whose name and handle are already normalized.
// An empty query scores every candidate 1.
func (q Query) Score(name, handle string) int {
	if q.text == "" {
		return browseScore
	}

	score := 0
	if strings.Contains(name, q.text) {
		score += NameContainsWeight
	}
	if strings.Contains(handle, q.text) {
		score += HandleContainsWeight
	}

	for _, token := range q.tokens {
		if strings.Contains(name, token) {
			score += NameTokenWeight
		}
		if strings.Contains(handle, token) {
			score += HandleTokenWeight
		}
	}

	return score
}

// Score rates a normalized candidate name and handle against a normalized query.
func Score(query, name, handle string) int {
	return parseQuery(query).Score(name, handle)
}

// scoringTokens splits a normalized query and keeps tokens long enough to count.
func scoringTokens(normalized string) []string {
	var tokens []string
	for _, word := range strings.Split(normalized, " ") {
		if len(word) >= MinTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
