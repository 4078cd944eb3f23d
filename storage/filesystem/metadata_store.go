package filesystem

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/revelaction/uzudt/storage"
	"github.com/revelaction/uzudt/wiki"
)

const (
	PageMapFile            = "page_map.json"
	CategoryLinksFile      = "category_links.json"
	CategoryToArticlesFile = "category_to_articles.json"
	CategoryStatsFile      = "category_stats.tsv"
)

// MetadataStore keeps wiki metadata as JSON files in a directory.
type MetadataStore struct {
	root string

	// In-memory cache of category_to_articles.json
	articles map[string][]string
}

var _ storage.MetadataRepository = (*MetadataStore)(nil)

func NewMetadataStore(root string) *MetadataStore {
	return &MetadataStore{root: root}
}

func (s *MetadataStore) Write(md wiki.Metadata, cb func(current, total int)) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}

	links := make(map[string][]string, len(md.Links))
	for _, pc := range md.Links {
		links[strconv.Itoa(pc.PageId)] = pc.Categories
	}

	files := []struct {
		name string
		v    any
	}{
		{PageMapFile, md.Pages},
		{CategoryLinksFile, links},
		{CategoryToArticlesFile, md.Articles},
	}

	total := len(files) + 1
	for i, f := range files {
		if err := writeJSON(filepath.Join(s.root, f.name), f.v); err != nil {
			return err
		}
		if cb != nil {
			cb(i+1, total)
		}
	}

	if err := writeStats(filepath.Join(s.root, CategoryStatsFile), wiki.Stats(md.Articles)); err != nil {
		return err
	}
	if cb != nil {
		cb(total, total)
	}

	s.articles = md.Articles
	return nil
}

func (s *MetadataStore) Articles(category string) ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.articles[category], nil
}

func (s *MetadataStore) Stats() ([]wiki.CategoryStat, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return wiki.Stats(s.articles), nil
}

func (s *MetadataStore) load() error {
	if s.articles != nil {
		return nil
	}

	path := filepath.Join(s.root, CategoryToArticlesFile)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("missing %s, build the metadata first: %w", path, err)
		}
		return err
	}

	var articles map[string][]string
	if err := json.Unmarshal(content, &articles); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.articles = articles
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeStats(path string, stats []wiki.CategoryStat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "category\tarticle_count\n")
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%d\n", st.Category, st.Articles)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
