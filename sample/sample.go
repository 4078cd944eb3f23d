// Package sample collects annotation input sentences from WikiExtractor
// output, a fixed number per target category.
package sample

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/revelaction/uzudt/file"
)

// Options configure a sampling run.
type Options struct {
	// Targets are the categories to sample, in output order.
	Targets []string

	PerCategory int
	MinTokens   int
	MaxTokens   int

	// ExtractedDir holds WikiExtractor --json output (wiki_00, wiki_01...).
	ExtractedDir string
}

// Count is the number of sentences collected for a category.
type Count struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Count    int    `json:"count"`
	Target   int    `json:"target"`
}

// Result is the outcome of a sampling run.
type Result struct {
	// Sentences are the deduplicated sentences of each target.
	Sentences map[string][]string

	Counts []Count

	// Articles is the number of matching articles read.
	Articles int
}

// All returns all sentences in target order.
func (r Result) All(targets []string) []string {
	var all []string
	for _, cat := range targets {
		all = append(all, r.Sentences[cat]...)
	}
	return all
}

type Sampler struct {
	Opts Options

	// Titles maps an article title to its target categories.
	Titles map[string][]string

	// Progress, if not nil, is called after each file with the number of
	// files done and the total.
	Progress func(done, total int)
}

// Files returns the WikiExtractor output files under dir.
func Files(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasPrefix(d.Name(), "wiki_") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no WikiExtractor output files found under %s, expected files like AA/wiki_00", dir)
	}
	return files, nil
}

// Run scans the extracted articles until every target has its quota or the
// files are exhausted.
func (s *Sampler) Run() (Result, error) {
	files, err := Files(s.Opts.ExtractedDir)
	if err != nil {
		return Result{}, err
	}

	collected := make(map[string][]string, len(s.Opts.Targets))
	res := Result{}

	for i, path := range files {
		n, err := s.scan(path, collected)
		if err != nil {
			return Result{}, err
		}
		res.Articles += n

		if s.Progress != nil {
			s.Progress(i+1, len(files))
		}

		if s.done(collected) {
			break
		}
	}

	res.Sentences = make(map[string][]string, len(s.Opts.Targets))
	for _, cat := range s.Opts.Targets {
		sentences := dedupe(collected[cat])
		res.Sentences[cat] = sentences
		res.Counts = append(res.Counts, Count{
			Category: cat,
			Slug:     Slug(cat),
			Count:    len(sentences),
			Target:   s.Opts.PerCategory,
		})
	}

	return res, nil
}

// scan reads one WikiExtractor file, one JSON article per line.
func (s *Sampler) scan(path string, collected map[string][]string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	articles := 0
	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if line != "" && gjson.Valid(line) {
			if s.article(line, collected) {
				articles++
			}
			if s.done(collected) {
				return articles, nil
			}
		}

		if errors.Is(err, io.EOF) {
			return articles, nil
		}
		if err != nil {
			return articles, err
		}
	}
}

// article adds the accepted sentences of the article to its categories. It
// reports whether the article belongs to a target.
func (s *Sampler) article(line string, collected map[string][]string) bool {
	fields := gjson.GetMany(line, "title", "text")
	title, text := fields[0].String(), fields[1].String()
	if title == "" || text == "" {
		return false
	}

	cats := s.Titles[title]
	if len(cats) == 0 {
		return false
	}

	for _, sentence := range Split(text) {
		if !Accept(sentence, s.Opts.MinTokens, s.Opts.MaxTokens) {
			continue
		}
		for _, cat := range cats {
			if len(collected[cat]) < s.Opts.PerCategory {
				collected[cat] = append(collected[cat], sentence)
			}
		}
	}

	return true
}

func (s *Sampler) done(collected map[string][]string) bool {
	for _, cat := range s.Opts.Targets {
		if len(collected[cat]) < s.Opts.PerCategory {
			return false
		}
	}
	return true
}

// Write writes one file per category under dir and the combined file.
func Write(res Result, targets []string, dir, combined string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(combined), 0o755); err != nil {
		return err
	}

	for _, cat := range targets {
		path := filepath.Join(dir, Slug(cat)+".txt")
		if err := file.WriteLines(path, res.Sentences[cat]); err != nil {
			return err
		}
	}

	return file.WriteLines(combined, res.All(targets))
}

func dedupe(sentences []string) []string {
	seen := make(map[string]bool, len(sentences))
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
