package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/wiki"
)

const (
	pageDump         = "page.sql.gz"
	categoryLinkDump = "categorylinks.sql.gz"
)

func metadataCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "metadata",
		Usage: "parse the page and categorylinks dumps and store the category to articles map",
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			return e.metadata()
		},
	}
}

func (e *env) metadata() error {
	w := e.cfg.Wiki

	fmt.Fprintf(e.ui.Out, "📖 %s\n", w.DumpPath(pageDump))
	pages, err := parseDump(w.DumpPath(pageDump), wiki.ParsePages)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.ui.Out, "   %s main namespace pages\n", humanize.Comma(int64(len(pages))))

	fmt.Fprintf(e.ui.Out, "📖 %s\n", w.DumpPath(categoryLinkDump))
	links, err := parseDump(w.DumpPath(categoryLinkDump), wiki.ParseCategoryLinks)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.ui.Out, "   %s pages with categories\n", humanize.Comma(int64(len(links))))

	md := wiki.NewMetadata(pages, links)
	if md.Missing > 0 {
		e.logger.Warn("pages with categories missing from page dump", "count", md.Missing)
	}

	pool := &Pool{}
	defer pool.Close()

	repo, err := NewMetadataRepository(pool, w.Metadata, true)
	if err != nil {
		return err
	}

	var bar *uiprogress.Bar
	err = repo.Write(md, func(current, total int) {
		if bar == nil {
			uiprogress.Start()
			bar = uiprogress.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
		}
		_ = bar.Set(current)
	})
	if bar != nil {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "💾 %s categories written to %s\n", humanize.Comma(int64(len(md.Articles))), w.Metadata)
	return nil
}

func parseDump[T any](path string, parse func(r io.Reader) (T, error)) (T, error) {
	var zero T

	rc, err := wiki.Open(path)
	if err != nil {
		return zero, fmt.Errorf("dump %s: %w, run uzudt download first", path, err)
	}
	defer rc.Close()

	v, err := parse(rc)
	if err != nil {
		return zero, fmt.Errorf("dump %s: %w", path, err)
	}
	return v, nil
}
