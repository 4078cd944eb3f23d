package main

import (
	"errors"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/render"
	"github.com/revelaction/uzudt/sample"
	"github.com/revelaction/uzudt/wiki"
)

func sampleCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "collect sentences of the target categories from the extracted articles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "targets",
				Usage: "targets file (default from config)",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}

			path := e.cfg.Sample.TargetsFile
			if c.IsSet("targets") {
				path = c.String("targets")
			}
			return e.sample(path)
		},
	}
}

func (e *env) sample(targetsPath string) error {
	cfg := e.cfg

	targets, err := e.targets(targetsPath)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return errors.New("no target categories, run uzudt edit or set sample.categories")
	}

	pool := &Pool{}
	defer pool.Close()

	repo, err := NewMetadataRepository(pool, cfg.Wiki.Metadata, false)
	if err != nil {
		return err
	}

	titles, err := wiki.TitleCategories(repo.Articles, targets)
	if err != nil {
		return err
	}
	e.logger.Info("target articles", "categories", len(targets), "titles", len(titles))

	s := &sample.Sampler{
		Opts: sample.Options{
			Targets:      targets,
			PerCategory:  cfg.Sample.PerCategory,
			MinTokens:    cfg.Sample.MinTokens,
			MaxTokens:    cfg.Sample.MaxTokens,
			ExtractedDir: cfg.Wiki.ExtractedDir,
		},
		Titles: titles,
	}

	var bar *uiprogress.Bar
	s.Progress = func(done, total int) {
		if bar == nil {
			uiprogress.Start()
			bar = uiprogress.AddBar(total)
			bar.AppendCompleted()
			bar.PrependElapsed()
		}
		_ = bar.Set(done)
	}

	res, err := s.Run()
	if bar != nil {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}

	render.Samples(e.ui.Out, res.Counts, res.Articles)

	if err := sample.Write(res, targets, cfg.Wiki.SentencesDir, cfg.Paths.Sentences); err != nil {
		return err
	}

	fmt.Fprintf(e.ui.Out, "💾 %d sentences written to %s\n", len(res.All(targets)), cfg.Paths.Sentences)
	return nil
}
