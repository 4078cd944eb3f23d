// Package wiki downloads Wikipedia dump files and extracts page and
// category metadata from the MediaWiki SQL dumps.
package wiki

import (
	"slices"
	"sort"
)

// PageCategories are the categories of one page, in dump order.
type PageCategories struct {
	PageId     int
	Categories []string
}

// CategoryStat is the number of articles of a category.
type CategoryStat struct {
	Category string `json:"category"`
	Articles int    `json:"article_count"`
}

// Metadata is the joined result of the page and categorylinks dumps.
type Metadata struct {
	// Pages maps main namespace page ids to titles.
	Pages map[int]string

	// Links holds the categories of each page, in dump order of first
	// appearance.
	Links []PageCategories

	// Articles maps a category to its article titles.
	Articles map[string][]string

	// Missing counts pages with categories but absent from Pages.
	Missing int
}

// NewMetadata joins pages and links.
func NewMetadata(pages map[int]string, links []PageCategories) Metadata {
	articles, missing := CategoryArticles(pages, links)
	return Metadata{Pages: pages, Links: links, Articles: articles, Missing: missing}
}

// CategoryArticles maps each category to the titles of its pages. Pages
// that are not in pages are skipped and counted.
func CategoryArticles(pages map[int]string, links []PageCategories) (map[string][]string, int) {
	articles := map[string][]string{}
	missing := 0

	for _, pc := range links {
		title, ok := pages[pc.PageId]
		if !ok || title == "" {
			missing++
			continue
		}
		for _, cat := range pc.Categories {
			articles[cat] = append(articles[cat], title)
		}
	}

	return articles, missing
}

// Stats returns the article count of every category, largest first, ties
// by name.
func Stats(articles map[string][]string) []CategoryStat {
	stats := make([]CategoryStat, 0, len(articles))
	for cat, titles := range articles {
		stats = append(stats, CategoryStat{Category: cat, Articles: len(titles)})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Articles != stats[j].Articles {
			return stats[i].Articles > stats[j].Articles
		}
		return stats[i].Category < stats[j].Category
	})

	return stats
}

// TitleCategories maps each article title of the target categories to the
// targets it belongs to, in target order.
func TitleCategories(articles func(category string) ([]string, error), targets []string) (map[string][]string, error) {
	titles := map[string][]string{}
	for _, cat := range targets {
		arts, err := articles(cat)
		if err != nil {
			return nil, err
		}
		for _, t := range arts {
			if !slices.Contains(titles[t], cat) {
				titles[t] = append(titles[t], cat)
			}
		}
	}
	return titles, nil
}
