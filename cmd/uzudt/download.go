package main

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/wiki"
)

func downloadCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "download the Wikipedia dump files of the configured snapshot",
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			return e.download(c)
		},
	}
}

func (e *env) download(c *cli.Context) error {
	w := e.cfg.Wiki

	d := &wiki.Downloader{
		Client:   &http.Client{},
		Progress: downloadProgress(e.ui),
	}

	for _, suffix := range w.Files {
		url, dest := w.DumpURL(suffix), w.DumpPath(suffix)

		fmt.Fprintf(e.ui.Out, "⬇  %s\n", url)
		fetched, err := d.Fetch(c.Context, url, dest)
		if err != nil {
			return err
		}

		if !fetched {
			fmt.Fprintf(e.ui.Out, "   exists, skipping %s\n", dest)
			continue
		}

		fmt.Fprintf(e.ui.Out, "\n   saved %s\n", dest)
		e.logger.Info("downloaded", "url", url, "dest", dest)
	}

	return nil
}

// downloadProgress rewrites one status line with the bytes received.
func downloadProgress(ui UI) wiki.Progress {
	return func(done, total int64) {
		if total > 0 {
			fmt.Fprintf(ui.Out, "\r   %s / %s", humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
			return
		}
		fmt.Fprintf(ui.Out, "\r   %s", humanize.Bytes(uint64(done)))
	}
}
