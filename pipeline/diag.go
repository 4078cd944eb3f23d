package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	sent "github.com/revelaction/uzudt/sentence"
)

// diagnostics writes the per-sentence files of a halted sentence.
type diagnostics struct {
	dir string
}

func (d diagnostics) base(s sent.Sentence) string {
	return filepath.Join(d.dir, fmt.Sprintf("sentence_%04d", s.Index))
}

// failure writes the sentence and the error detail.
func (d diagnostics) failure(s sent.Sentence, cause error) (string, error) {
	path := d.base(s) + "_exception.txt"
	content := fmt.Sprintf("Sentence index: %d\nSentence: %s\n\nError: %v\n", s.Index, s.Text, cause)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing diagnostic %s: %w", path, err)
	}
	return path, nil
}

// invalid writes the raw tokens, the rendered record and the validator log.
func (d diagnostics) invalid(s sent.Sentence, tokens sent.Tokens, record, log string) ([]string, error) {
	base := d.base(s)
	jsonPath := base + ".json"
	conlluPath := base + ".conllu"
	logPath := base + ".val.log"

	files := []struct {
		path    string
		content []byte
	}{
		{jsonPath, indent(tokens.RawJSON())},
		{conlluPath, []byte(record)},
		{logPath, []byte(log)},
	}

	for _, f := range files {
		if err := os.WriteFile(f.path, f.content, 0o644); err != nil {
			return nil, fmt.Errorf("writing diagnostic %s: %w", f.path, err)
		}
	}

	return []string{jsonPath, conlluPath, logPath}, nil
}

func indent(raw string) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return []byte(raw)
	}
	return buf.Bytes()
}
