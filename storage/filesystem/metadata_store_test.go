package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/uzudt/wiki"
)

func testMetadata() wiki.Metadata {
	return wiki.NewMetadata(
		map[int]string{1: "Amir Temur", 2: "Samarqand", 3: "Alisher Navoiy"},
		[]wiki.PageCategories{
			{PageId: 1, Categories: []string{"TARIX", "SHAXSLAR"}},
			{PageId: 2, Categories: []string{"TARIX"}},
			{PageId: 3, Categories: []string{"SHAXSLAR", "ADABIYOT"}},
		},
	)
}

func TestMetadataStoreWriteRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metadata")

	calls := 0
	require.NoError(t, NewMetadataStore(dir).Write(testMetadata(), func(current, total int) { calls++ }))
	assert.Equal(t, 4, calls)

	for _, name := range []string{PageMapFile, CategoryLinksFile, CategoryToArticlesFile, CategoryStatsFile} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	// A fresh store reads the files back.
	s := NewMetadataStore(dir)

	arts, err := s.Articles("TARIX")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amir Temur", "Samarqand"}, arts)

	arts, err = s.Articles("YOQ")
	require.NoError(t, err)
	assert.Empty(t, arts)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, []wiki.CategoryStat{
		{Category: "SHAXSLAR", Articles: 2},
		{Category: "TARIX", Articles: 2},
		{Category: "ADABIYOT", Articles: 1},
	}, stats)

	tsv, err := os.ReadFile(filepath.Join(dir, CategoryStatsFile))
	require.NoError(t, err)
	assert.Equal(t, "category\tarticle_count\nSHAXSLAR\t2\nTARIX\t2\nADABIYOT\t1\n", string(tsv))
}

func TestMetadataStoreMissing(t *testing.T) {
	_, err := NewMetadataStore(t.TempDir()).Articles("TARIX")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
