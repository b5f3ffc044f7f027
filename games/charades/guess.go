/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"slices"
	"strings"
)

// normalizeGuess case-folds a guess. Whitespace is kept, so " pizza" is not
// "pizza".
func normalizeGuess(guess string) string {
	return strings.ToLower(guess)
}

// Matches reports whether guess names concept. Unknown concepts never match.
func (c *Catalog) Matches(concept Concept, guess string) bool {
	words, ok := c.keywords[concept]
	if !ok || guess == "" {
		return false
	}
	return slices.Contains(words, normalizeGuess(guess))
}
