// Package stat aggregates statistics over Corpus sentences.
package stat

import (
	"sort"

	"github.com/revelaction/uzudt/conllu"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int            `json:"sentences"`
	NumTokens             int            `json:"tokens"`
	TokensPerSentenceMean float64        `json:"tokens_per_sentence_mean"`
	TokensPerSentenceDis  map[int]int    `json:"tokens_per_sentence"`
	Upos                  map[string]int `json:"upos"`
	Deprel                map[string]int `json:"deprel"`
}

// Count is a label and its frequency.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{
		TokensPerSentenceDis: map[int]int{},
		Upos:                 map[string]int{},
		Deprel:               map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences to the running statistics.
func (h *Handler) Aggregate(sentences []conllu.Sentence) {
	h.stats.NumSentences += len(sentences)

	for _, sentence := range sentences {
		h.stats.NumTokens += len(sentence.Lines)
		h.stats.TokensPerSentenceDis[len(sentence.Lines)]++

		for _, l := range sentence.Lines {
			h.stats.Upos[l[3]]++
			h.stats.Deprel[l[7]]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = float64(h.stats.NumTokens) / float64(h.stats.NumSentences)
	}
}

// Sorted returns the counts ordered by frequency descending, then label.
func Sorted(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})

	return counts
}
