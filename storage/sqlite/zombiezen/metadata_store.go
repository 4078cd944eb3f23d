package zombiezen

import (
	"context"
	"fmt"

	"github.com/revelaction/uzudt/storage"
	"github.com/revelaction/uzudt/wiki"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type MetadataStore struct {
	pool *sqlitex.Pool
}

var _ storage.MetadataRepository = (*MetadataStore)(nil)

// NewMetadataStore returns a store on pool. The schema must exist, see
// CreateSchemas.
func NewMetadataStore(pool *sqlitex.Pool) *MetadataStore {
	return &MetadataStore{pool: pool}
}

func (s *MetadataStore) Write(md wiki.Metadata, cb func(current, total int)) (err error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	for _, q := range []string{"DELETE FROM category_links", "DELETE FROM pages"} {
		if err = sqlitex.Execute(conn, q, nil); err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}
	}

	total := len(md.Pages) + len(md.Links)
	current := 0

	for id, title := range md.Pages {
		err = sqlitex.Execute(conn, "INSERT INTO pages (id, title) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []any{id, title},
		})
		if err != nil {
			return fmt.Errorf("failed to insert page %d: %w", id, err)
		}
		current++
		if cb != nil {
			cb(current, total)
		}
	}

	// Links are inserted in dump order, rowid keeps it.
	for _, pc := range md.Links {
		for _, cat := range pc.Categories {
			err = sqlitex.Execute(conn, "INSERT INTO category_links (page_id, category) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []any{pc.PageId, cat},
			})
			if err != nil {
				return fmt.Errorf("failed to insert category link %d: %w", pc.PageId, err)
			}
		}
		current++
		if cb != nil {
			cb(current, total)
		}
	}

	return nil
}

func (s *MetadataStore) Articles(category string) ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var titles []string
	err = sqlitex.Execute(conn, `SELECT p.title FROM category_links l
		JOIN pages p ON p.id = l.page_id
		WHERE l.category = ?
		ORDER BY l.rowid`, &sqlitex.ExecOptions{
		Args: []any{category},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			titles = append(titles, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

func (s *MetadataStore) Stats() ([]wiki.CategoryStat, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var stats []wiki.CategoryStat
	err = sqlitex.Execute(conn, `SELECT l.category, COUNT(*) AS n FROM category_links l
		JOIN pages p ON p.id = l.page_id
		GROUP BY l.category
		ORDER BY n DESC, l.category ASC`, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			stats = append(stats, wiki.CategoryStat{
				Category: stmt.ColumnText(0),
				Articles: stmt.ColumnInt(1),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
