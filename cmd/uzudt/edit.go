package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/edit"
)

func editCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "pick the target categories for sampling interactively",
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			return e.edit()
		},
	}
}

func (e *env) edit() error {
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

	targets, err := e.targets(e.cfg.Sample.TargetsFile)
	if err != nil {
		return err
	}

	hdl := edit.NewHandler(stats, targets, e.cfg.Sample.TargetsFile, e.ui.Out)
	return hdl.Run()
}

// targets returns the categories of the targets file, or the configured
// ones when the file does not exist.
func (e *env) targets(path string) ([]string, error) {
	targets, err := edit.LoadTargets(path)
	if err != nil {
		return nil, err
	}

	if targets == nil {
		return e.cfg.Sample.Categories, nil
	}

	return targets, nil
}
