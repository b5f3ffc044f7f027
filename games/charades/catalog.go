/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"math/rand/v2"
	"slices"
)

// Concept is the secret the actor has to convey. Concepts are emoji.
type Concept string

// Catalog maps each concept to the lowercase guesses accepted for it.
type Catalog struct {
	concepts []Concept
	keywords map[Concept][]string
}

// NewCatalog builds a catalog from a concept → keywords table. Keywords are
// stored as given, so callers provide them lowercased.
func NewCatalog(table map[Concept][]string) *Catalog {
	c := &Catalog{
		concepts: make([]Concept, 0, len(table)),
		keywords: make(map[Concept][]string, len(table)),
	}
	for concept, words := range table {
		c.concepts = append(c.concepts, concept)
		c.keywords[concept] = slices.Clone(words)
	}
	// map order is random; keep draws reproducible for a seeded source
	slices.Sort(c.concepts)

	return c
}

// DefaultCatalog returns the built-in emoji set.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Concept][]string{
		"🍕":  {"pizza"},
		"🚗":  {"car", "driving", "drive"},
		"🐱":  {"cat", "kitten", "kitty"},
		"🏖️": {"beach", "vacation", "holiday"},
		"🎉":  {"party", "celebration", "celebrate"},
		"🤖":  {"robot", "android"},
		"💻":  {"computer", "laptop", "coding", "programming"},
		"🎤":  {"microphone", "mic", "singing", "sing", "karaoke"},
		"🛏️": {"bed", "sleep", "sleeping"},
		"🎮":  {"game", "video game", "gaming", "controller"},
		"👑":  {"crown", "king", "queen"},
		"🍎":  {"apple", "fruit"},
	})
}

// Len reports how many concepts the catalog holds.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// Concepts returns every concept in a stable order.
func (c *Catalog) Concepts() []Concept {
	return slices.Clone(c.concepts)
}

// Keywords returns the accepted guesses for concept, or nil if the concept is
// unknown.
func (c *Catalog) Keywords(concept Concept) []string {
	return slices.Clone(c.keywords[concept])
}

// Has reports whether concept is in the catalog.
func (c *Catalog) Has(concept Concept) bool {
	_, ok := c.keywords[concept]
	return ok
}

// Draw picks a concept uniformly at random. Draws are independent, so the same
// concept may come up in consecutive rounds.
func (c *Catalog) Draw(rng *rand.Rand) Concept {
	if len(c.concepts) == 0 {
		return ""
	}
	return c.concepts[rng.IntN(len(c.concepts))]
}
