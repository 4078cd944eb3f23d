package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/uzudt/sample"
	sent "github.com/revelaction/uzudt/sentence"
	"github.com/revelaction/uzudt/stat"
	"github.com/revelaction/uzudt/wiki"
)

func TestReporter(t *testing.T) {
	var b bytes.Buffer
	r := NewReporter(&b, false)
	s := sent.Sentence{Index: 3, Text: "Men keldim."}

	r.Plan("data/raw/uz_sentences.txt", 10, 2, 3, "gpt-5-mini")
	r.Sentence(s, 10)
	r.Committed(s)
	r.Invalid(s, []string{"a.json", "a.conllu"})
	r.Failed(s, "e.txt", errors.New("boom"))

	out := b.String()
	assert.Contains(t, out, "Total sentences in data/raw/uz_sentences.txt: 10\n")
	assert.Contains(t, out, "Starting from sentence index: 3\n")
	assert.Contains(t, out, "[3/10] Men keldim.\n")
	assert.Contains(t, out, "✓ VALID")
	assert.Contains(t, out, "       a.conllu\n")
	assert.Contains(t, out, "EXCEPTION, logged to e.txt")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "\x1b[")
}

func TestCategories(t *testing.T) {
	var b bytes.Buffer
	Categories(&b, []wiki.CategoryStat{
		{Category: "Tarix", Articles: 9},
		{Category: "Fizika", Articles: 4},
		{Category: "Kimyo", Articles: 1},
	}, 2)

	out := b.String()
	assert.Contains(t, out, "Tarix")
	assert.Contains(t, out, "Fizika")
	assert.NotContains(t, out, "Kimyo")
	assert.Contains(t, out, "Total: 2 categories")
}

func TestSamples(t *testing.T) {
	var b bytes.Buffer
	Samples(&b, []sample.Count{{Category: "Tarix", Slug: "tarix", Count: 3, Target: 20}}, 5)

	out := b.String()
	assert.Contains(t, out, "tarix.txt")
	assert.Contains(t, out, "5 articles")
}

func TestStats(t *testing.T) {
	var b bytes.Buffer
	Stats(&b, stat.Stats{
		NumSentences:          2,
		NumTokens:             3,
		TokensPerSentenceMean: 1.5,
		TokensPerSentenceDis:  map[int]int{1: 1, 2: 1},
		Upos:                  map[string]int{"VERB": 2, "PRON": 1},
		Deprel:                map[string]int{"root": 2, "nsubj": 1},
	})

	out := b.String()
	assert.Contains(t, out, "Tokens per sentence (mean): 1.50\n")
	assert.Contains(t, out, "VERB")
	assert.Contains(t, out, "nsubj")
	assert.Less(t, strings.Index(out, "VERB"), strings.Index(out, "PRON"))
}

func TestJSON(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, JSON(&b, map[string]string{"text": "<a> & b"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(b.Bytes(), &got))
	assert.Equal(t, "<a> & b", got["text"])
	assert.Contains(t, b.String(), "<a> & b")
}
