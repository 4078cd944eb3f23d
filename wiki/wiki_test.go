package wiki

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageDump = `-- MySQL dump
CREATE TABLE page (page_id int);
INSERT INTO ` + "`page`" + ` VALUES (10,0,'Sun''iy_intellekt','',0,0,0.5,'20251020'),(11,14,'Tarix','',0,0,0.1,'20251020'),(12,0,'Amir_Temur','',0,0,0.2,'20251020');
INSERT INTO ` + "`page`" + ` VALUES (13,0,'Buyuk_Ipak_yoʻli','',0,0,0.3,'20251020');
`

const categoryDump = `INSERT INTO ` + "`categorylinks`" + ` VALUES (12,'TARIX','AMIR TEMUR','2025-01-01 00:00:00','','uca','page'),(13,'TARIX','BUYUK','2025-01-01 00:00:00','','uca','page'),(12,'Tarixiy_shaxslar','X','2025-01-01 00:00:00','','uca','page');
INSERT INTO ` + "`categorylinks`" + ` VALUES (99,'TARIX','Y','2025-01-01 00:00:00','','uca','page'),(10,'Fan','Z','2025-01-01 00:00:00','','uca','page');
`

func TestParsePages(t *testing.T) {
	pages, err := ParsePages(strings.NewReader(pageDump))
	require.NoError(t, err)

	assert.Equal(t, map[int]string{
		10: "Sun'iy intellekt",
		12: "Amir Temur",
		13: "Buyuk Ipak yoʻli",
	}, pages)
}

func TestParseCategoryLinks(t *testing.T) {
	links, err := ParseCategoryLinks(strings.NewReader(categoryDump))
	require.NoError(t, err)

	assert.Equal(t, []PageCategories{
		{PageId: 12, Categories: []string{"TARIX", "Tarixiy shaxslar"}},
		{PageId: 13, Categories: []string{"TARIX"}},
		{PageId: 99, Categories: []string{"TARIX"}},
		{PageId: 10, Categories: []string{"Fan"}},
	}, links)
}

func TestNewMetadata(t *testing.T) {
	pages, err := ParsePages(strings.NewReader(pageDump))
	require.NoError(t, err)
	links, err := ParseCategoryLinks(strings.NewReader(categoryDump))
	require.NoError(t, err)

	md := NewMetadata(pages, links)

	assert.Equal(t, 1, md.Missing)
	assert.Equal(t, []string{"Amir Temur", "Buyuk Ipak yoʻli"}, md.Articles["TARIX"])
	assert.Equal(t, []string{"Sun'iy intellekt"}, md.Articles["Fan"])

	assert.Equal(t, []CategoryStat{
		{Category: "TARIX", Articles: 2},
		{Category: "Fan", Articles: 1},
		{Category: "Tarixiy shaxslar", Articles: 1},
	}, Stats(md.Articles))
}

func TestTitleCategories(t *testing.T) {
	articles := map[string][]string{
		"TARIX": {"Amir Temur", "Buyuk Ipak yoʻli"},
		"SHAXS": {"Amir Temur"},
	}
	lookup := func(c string) ([]string, error) { return articles[c], nil }

	titles, err := TitleCategories(lookup, []string{"TARIX", "SHAXS", "YOQ"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"Amir Temur":       {"TARIX", "SHAXS"},
		"Buyuk Ipak yoʻli": {"TARIX"},
	}, titles)
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uzwiki-page.sql.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(pageDump))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()

	pages, err := ParsePages(rc)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
}

func TestTitleCategoriesRepeatedTarget(t *testing.T) {
	lookup := func(c string) ([]string, error) { return []string{"Samarqand", "Samarqand"}, nil }

	titles, err := TitleCategories(lookup, []string{"TARIX", "TARIX"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"Samarqand": {"TARIX"}}, titles)
}
