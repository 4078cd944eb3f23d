package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/render"
)

const defaultTop = 50

func categoriesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "print the categories with the most articles",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: defaultTop,
				Usage: "number of categories to print, 0 for all",
			},
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
			return e.categories(c.Int("top"), c.Bool("json"))
		},
	}
}

func (e *env) categories(top int, asJSON bool) error {
	pool := &Pool{}
	defer pool.Close()

	repo, err := NewMetadataRepository(pool, e.cfg.Wiki.Metadata, false)
	if err != nil {
		return err
	}

	stats, err := repo.Stats()
	if err != nil {
		return err
	}

	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}

	if asJSON {
		return render.JSON(e.ui.Out, stats)
	}

	render.Categories(e.ui.Out, stats, 0)
	return nil
}
