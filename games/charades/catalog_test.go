/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package charades

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCatalog_Matches(t *testing.T) {
	c := DefaultCatalog()

	testCases := []struct {
		concept Concept
		guess   string
		want    bool
	}{
		{"🍕", "pizza", true},
		{"🍕", "PiZZa", true},
		{"🍕", " pizza", false},
		{"🍕", "pizza ", false},
		{"🍕", "", false},
		{"🍕", "pie", false},
		{"🎮", "video game", true},
		{"🎮", "Video Game", true},
		{"🎮", "videogame", false},
		{"🎤", "KARAOKE", true},
		{"🐱", "car", false},
		{"🦄", "unicorn", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, c.Matches(tc.concept, tc.guess), "%s / %q", tc.concept, tc.guess)
	}
}

func TestCatalog_Default(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, 12, c.Len())
	for _, concept := range c.Concepts() {
		words := c.Keywords(concept)
		assert.NotEmpty(t, words, concept)
		for _, w := range words {
			assert.Equal(t, normalizeGuess(w), w, "keywords are stored lowercase")
		}
	}

	want := []string{"microphone", "mic", "singing", "sing", "karaoke"}
	if diff := cmp.Diff(want, c.Keywords("🎤")); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_KeywordsAreCopies(t *testing.T) {
	c := NewCatalog(map[Concept][]string{"🍎": {"apple"}})

	words := c.Keywords("🍎")
	words[0] = "banana"

	assert.True(t, c.Matches("🍎", "apple"))
	assert.False(t, c.Matches("🍎", "banana"))
	assert.Nil(t, c.Keywords("🍌"))
}

func TestCatalog_Draw(t *testing.T) {
	c := DefaultCatalog()
	rng := rand.New(rand.NewPCG(7, 7))

	seen := make(map[Concept]bool)
	for range 500 {
		got := c.Draw(rng)
		assert.True(t, c.Has(got), got)
		seen[got] = true
	}
	assert.Len(t, seen, c.Len(), "every concept comes up eventually")

	// same seed, same sequence
	a, b := rand.New(rand.NewPCG(3, 4)), rand.New(rand.NewPCG(3, 4))
	for range 20 {
		assert.Equal(t, c.Draw(a), c.Draw(b))
	}
}

func TestCatalog_DrawEmpty(t *testing.T) {
	c := NewCatalog(nil)

	assert.Zero(t, c.Len())
	assert.Equal(t, Concept(""), c.Draw(rand.New(rand.NewPCG(1, 1))))
}
