// Package conllu renders annotated tokens as CoNLL-U records and reads
// them back from a corpus file.
//
// See https://universaldependencies.org/format.html
package conllu

import (
	"fmt"
	"strconv"
	"strings"

	sent "github.com/revelaction/uzudt/sentence"
)

const (
	// NumFields is the number of columns of a token line.
	NumFields = 10

	// Empty is the placeholder of an unused column.
	Empty = "_"

	DefaultUpos = "X"
	DefaultDep  = "dep"

	// SentIdPrefix is the value prefix of the sent_id comment of every
	// committed block.
	SentIdPrefix = "auto-"

	// SentIdComment starts the sent_id comment line of a block.
	SentIdComment = "# sent_id = "
	textComment   = "# text = "
)

// MalformedTokenError is returned when a token lacks its position or its
// surface form, or carries a field that cannot be used.
type MalformedTokenError struct {
	// Index of the token in the token list, from 0.
	Index int

	// Field names the absent or unusable field.
	Field string

	Raw string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("token %d: missing or invalid %s: %s", e.Index, e.Field, e.Raw)
}

// Format converts the tokens into a single sentence record, one line per
// token. Head references, cycles and ID contiguity are not checked.
func Format(tokens []sent.Token) (string, error) {
	var b strings.Builder

	for i, t := range tokens {
		if t.Id == nil {
			return "", &MalformedTokenError{Index: i, Field: "ID", Raw: t.Raw}
		}
		if t.Form == nil {
			return "", &MalformedTokenError{Index: i, Field: "FORM", Raw: t.Raw}
		}

		form := *t.Form
		lemma := valueOr(t.Lemma, strings.ToLower(form))
		upos := valueOr(t.Upos, DefaultUpos)
		dep := valueOr(t.Dep, DefaultDep)
		head := 0
		if t.Head != nil {
			head = *t.Head
		}

		fields := [NumFields]string{
			strconv.Itoa(*t.Id),
			form,
			lemma,
			upos,
			Empty, // XPOS
			Empty, // FEATS
			strconv.Itoa(head),
			dep,
			Empty, // DEPS
			Empty, // MISC
		}

		b.WriteString(strings.Join(fields[:], "\t"))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// Block returns the corpus block of a committed sentence: the sent_id and
// text comments, the record and a blank separator line.
func Block(index int, text, record string) string {
	var b strings.Builder
	b.WriteString(SentIdComment + SentId(index) + "\n")
	b.WriteString(textComment + text + "\n")
	b.WriteString(record)
	b.WriteByte('\n')
	return b.String()
}

// SentId returns the synthetic sentence id of the given commit index.
func SentId(index int) string {
	return SentIdPrefix + strconv.Itoa(index)
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
