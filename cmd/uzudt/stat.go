package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/conllu"
	"github.com/revelaction/uzudt/render"
	"github.com/revelaction/uzudt/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print statistics of the corpus",
		ArgsUsage: "[corpus.conllu]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}

			path := e.cfg.Paths.Corpus
			if c.Args().Present() {
				path = c.Args().First()
			}
			return e.stat(path, c.Bool("json"))
		},
	}
}

func (e *env) stat(path string, asJSON bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	defer f.Close()

	sentences, err := conllu.Read(f)
	if err != nil {
		return fmt.Errorf("corpus %s: %w", path, err)
	}

	hdl := stat.NewHandler()
	hdl.Aggregate(sentences)

	stats := hdl.Get()
	if asJSON {
		return render.JSON(e.ui.Out, stats)
	}

	render.Stats(e.ui.Out, stats)
	return nil
}
