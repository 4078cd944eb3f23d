package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	sent "github.com/revelaction/uzudt/sentence"
)

// ReadSentences reads one sentence per line. Lines are trimmed and blank
// lines are skipped; the remaining lines are numbered from 1.
func ReadSentences(r io.Reader) ([]sent.Sentence, error) {
	var sentences []sent.Sentence

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			sentences = append(sentences, sent.Sentence{Index: len(sentences) + 1, Text: text})
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return sentences, nil
}

// ReadSentencesFile reads the sentence file at path.
func ReadSentencesFile(path string) ([]sent.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sentence file: %w", err)
	}
	defer f.Close()

	return ReadSentences(f)
}

// WriteLines writes each line followed by a newline to path, truncating it.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			f.Close()
			return err
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
