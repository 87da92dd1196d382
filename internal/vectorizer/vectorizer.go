// Package vectorizer implements the lexical bag-of-words vectorizer behind
// the similarity index: a fixed vocabulary built from the knowledge base and
// term-count vectors over it.
package vectorizer

import (
	"math"
	"regexp"
	"strings"
)

// tokenPattern extracts maximal runs of word characters, mirroring a
// \b\w+\b word-boundary scan.
var tokenPattern = regexp.MustCompile(`\w+`)

// Vocabulary is the set of unique lowercase tokens appearing in the corpus,
// with a stable token→index mapping. Built once at startup; safe for
// concurrent reads because it is never mutated afterwards.
type Vocabulary struct {
	index map[string]int
	size  int
}

// Build constructs a vocabulary from the corpus. Token indices follow first
// appearance order, which is stable for the lifetime of the vocabulary.
func Build(corpus []string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, text := range corpus {
		for _, tok := range tokenize(text) {
			if _, ok := v.index[tok]; !ok {
				v.index[tok] = v.size
				v.size++
			}
		}
	}
	return v
}

// Size returns the number of dimensions every vector produced by this
// vocabulary has.
func (v *Vocabulary) Size() int {
	return v.size
}

// Vectorize converts text into a term-count vector of length Size().
// Position i holds the count of vocabulary token i in the text. Tokens
// absent from the vocabulary contribute nothing; this silently under-matches
// queries phrased with synonyms the static corpus never uses, which is a
// known limitation of lexical retrieval, not a bug.
// Empty input yields the zero vector.
func (v *Vocabulary) Vectorize(text string) []float64 {
	vec := make([]float64, v.size)
	for _, tok := range tokenize(text) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}

// Cosine computes cosine similarity between two vectors: dot product divided
// by the product of Euclidean norms. Defined as exactly 0 when either norm
// is 0, so the zero vector never divides by zero and never matches anything.
func Cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
