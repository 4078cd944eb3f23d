package wiki

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const insertPrefix = "INSERT INTO"

var (
	// (10,0,'Sun''iy_intellekt','',0,...
	pageTuple = regexp.MustCompile(`\((\d+),(\d+),'((?:[^']|'')*)',`)

	// (12345,'Tarixiy_shaxslar','Tarixiy shaxslar',...
	categoryTuple = regexp.MustCompile(`\((\d+),'((?:[^']|'')*)',`)
)

// ParsePages returns the id and title of every main namespace (0) page of a
// page.sql dump.
func ParsePages(r io.Reader) (map[int]string, error) {
	pages := map[int]string{}

	err := insertLines(r, func(line string) {
		for _, m := range pageTuple.FindAllStringSubmatch(line, -1) {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if m[2] != "0" {
				continue
			}
			pages[id] = unescape(m[3])
		}
	})
	if err != nil {
		return nil, err
	}

	return pages, nil
}

// ParseCategoryLinks returns the categories of every page of a
// categorylinks.sql dump, in order of first appearance of the page.
func ParseCategoryLinks(r io.Reader) ([]PageCategories, error) {
	var links []PageCategories
	index := map[int]int{}

	err := insertLines(r, func(line string) {
		for _, m := range categoryTuple.FindAllStringSubmatch(line, -1) {
			id, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}

			i, ok := index[id]
			if !ok {
				i = len(links)
				index[id] = i
				links = append(links, PageCategories{PageId: id})
			}
			links[i].Categories = append(links[i].Categories, unescape(m[2]))
		}
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}

// Open opens a dump file, decompressing it when its name ends in .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.f.Close(); err != nil {
		return err
	}
	return zerr
}

// insertLines calls fn for each INSERT line. Dump lines can be several
// megabytes long.
func insertLines(r io.Reader, fn func(line string)) error {
	br := bufio.NewReaderSize(r, 1<<20)
	for {
		line, err := br.ReadString('\n')
		if strings.HasPrefix(line, insertPrefix) {
			fn(line)
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, "''", "'")
	return strings.ReplaceAll(s, "_", " ")
}
