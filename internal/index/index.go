// Package index implements the in-memory similarity index: every knowledge
// snippet pre-vectorized over a shared vocabulary, partitioned by agent, and
// queried by cosine similarity. Built once before the HTTP surface opens and
// read-only afterwards, so concurrent queries need no locking.
package index

import (
	"sort"

	"github.com/Rafath-b/Customer-Care-Copilot/internal/domain"
	"github.com/Rafath-b/Customer-Care-Copilot/internal/vectorizer"
)

type entry struct {
	text   string
	vector []float64
}

// Index answers top-K nearest-neighbor queries over the static knowledge
// base.
type Index struct {
	vocab   *vectorizer.Vocabulary
	entries map[domain.Agent][]entry
}

// Build vectorizes every snippet and assembles the index. An empty or
// missing agent partition is not an error; it simply never returns matches.
func Build(snippets []domain.Snippet) *Index {
	corpus := make([]string, len(snippets))
	for i, s := range snippets {
		corpus[i] = s.Text
	}

	vocab := vectorizer.Build(corpus)

	entries := make(map[domain.Agent][]entry)
	for _, s := range snippets {
		entries[s.Agent] = append(entries[s.Agent], entry{
			text:   s.Text,
			vector: vocab.Vectorize(s.Text),
		})
	}

	return &Index{vocab: vocab, entries: entries}
}

// Vocabulary returns the vocabulary the index was built with.
func (i *Index) Vocabulary() *vectorizer.Vocabulary {
	return i.vocab
}

// Len returns the total number of indexed snippets across all agents.
func (i *Index) Len() int {
	n := 0
	for _, partition := range i.entries {
		n += len(partition)
	}
	return n
}

// Query returns the texts of at most k snippets from the agent's partition
// whose cosine similarity to the query text is strictly greater than
// threshold, ordered by descending similarity. Ties keep knowledge-base
// insertion order. The result is never nil and never an error: no overlap
// with the vocabulary is a normal empty outcome.
func (i *Index) Query(agent domain.Agent, queryText string, k int, threshold float64) []string {
	matches := make([]string, 0, k)
	if k <= 0 {
		return matches
	}

	queryVec := i.vocab.Vectorize(queryText)

	partition := i.entries[agent]
	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, len(partition))
	for j, e := range partition {
		ranked[j] = scored{text: e.text, score: vectorizer.Cosine(queryVec, e.vector)}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	for _, r := range ranked {
		if r.score <= threshold {
			break
		}
		matches = append(matches, r.text)
		if len(matches) == k {
			break
		}
	}
	return matches
}
