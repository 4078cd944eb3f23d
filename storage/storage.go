package storage

import (
	"github.com/revelaction/uzudt/wiki"
)

// MetadataReader defines read operations for wiki metadata storage
type MetadataReader interface {
	// Articles returns the article titles of a category, in dump order.
	// An unknown category has no articles.
	Articles(category string) ([]string, error)

	// Stats returns the article count of every category, largest first.
	Stats() ([]wiki.CategoryStat, error)
}

// MetadataWriter defines write operations for wiki metadata storage
type MetadataWriter interface {
	// Write replaces the stored metadata. cb, if not nil, is called as rows
	// are written.
	Write(md wiki.Metadata, cb func(current, total int)) error
}

// MetadataRepository combines read and write operations
type MetadataRepository interface {
	MetadataReader
	MetadataWriter
}
