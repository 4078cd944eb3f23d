package conllu

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sentence is a block read back from a corpus.
type Sentence struct {
	Id   string
	Text string

	// Comments holds all comment lines, without the leading "# ".
	Comments []string

	Lines [][NumFields]string
}

// Read parses the blocks of a CoNLL-U stream. Blocks are separated by blank
// lines; a token line with a wrong number of columns is an error.
func Read(r io.Reader) ([]Sentence, error) {
	var (
		sentences []Sentence
		cur       Sentence
		open      bool
		lineNo    int
	)

	flush := func() {
		if open {
			sentences = append(sentences, cur)
		}
		cur = Sentence{}
		open = false
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		open = true

		if strings.HasPrefix(line, "#") {
			c := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			cur.Comments = append(cur.Comments, c)
			switch {
			case strings.HasPrefix(line, SentIdComment):
				cur.Id = strings.TrimPrefix(line, SentIdComment)
			case strings.HasPrefix(line, textComment):
				cur.Text = strings.TrimPrefix(line, textComment)
			}
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != NumFields {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", lineNo, NumFields, len(cols))
		}

		var fields [NumFields]string
		copy(fields[:], cols)
		cur.Lines = append(cur.Lines, fields)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	flush()
	return sentences, nil
}
