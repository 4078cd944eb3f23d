package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/uzudt/annotate"
	"github.com/revelaction/uzudt/pipeline"
	"github.com/revelaction/uzudt/render"
	"github.com/revelaction/uzudt/validate"
)

func annotateCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "annotate",
		Usage: "annotate, validate and append sentences to the corpus, resuming after the last committed one",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "start-from",
				Usage: "1-based sentence index to start from, overriding the corpus checkpoint",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "annotation model (default from config)",
			},
		},
		Action: func(c *cli.Context) error {
			e, err := setup(c, ui)
			if err != nil {
				return err
			}
			return e.annotate(c)
		},
	}
}

func (e *env) annotate(c *cli.Context) error {
	cfg := e.cfg

	model := cfg.Annotate.Model
	if c.IsSet("model") {
		model = c.String("model")
	}

	var startFrom *int
	if c.IsSet("start-from") {
		n := c.Int("start-from")
		startFrom = &n
	}

	client, err := annotate.New(annotate.Options{
		Model:      model,
		APIURL:     cfg.Annotate.APIURL,
		APIKey:     cfg.Annotate.APIKey,
		PromptPath: cfg.Paths.Prompt,
		Logger:     e.logger,
	})
	if err != nil {
		return err
	}

	v, err := validate.New(validate.Options{
		Python: cfg.Validator.Python,
		Script: cfg.Validator.Script,
		Lang:   cfg.Validator.Lang,
		Level:  cfg.Validator.Level,
		Logger: e.logger,
	})
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Annotator: client,
		Validator: v,
		Reporter:  render.NewReporter(e.ui.Out, !color.NoColor),
		Logger:    e.logger,
	}

	sum, err := p.Run(c.Context, pipeline.Options{
		SentencesPath: cfg.Paths.Sentences,
		CorpusPath:    cfg.Paths.Corpus,
		LogDir:        cfg.Paths.Logs,
		StartFrom:     startFrom,
		Model:         client.Model(),
	})
	if err != nil {
		return err
	}

	return summaryExit(sum)
}

// summaryExit maps a finished run to the process exit status.
func summaryExit(sum pipeline.Summary) error {
	switch sum.Status {
	case pipeline.Stopped:
		return cli.Exit("", exitHalted)
	case pipeline.Cancelled:
		return cli.Exit("", exitInterrupted)
	}
	return nil
}
