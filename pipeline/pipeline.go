// Package pipeline drives the resumable annotation run: sentences are
// annotated, converted, validated and appended to the corpus one at a time,
// and the first failure halts the run.
//
// The corpus only ever receives validated blocks. A halted sentence leaves
// no trace in it, so the next run resolves the same checkpoint and retries
// that sentence.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/revelaction/uzudt/checkpoint"
	"github.com/revelaction/uzudt/conllu"
	"github.com/revelaction/uzudt/file"
	sent "github.com/revelaction/uzudt/sentence"
	"github.com/revelaction/uzudt/validate"
)

// Annotator returns the token annotation of a sentence.
type Annotator interface {
	Annotate(ctx context.Context, sentence string) (sent.Tokens, error)
}

// Validator checks a CoNLL-U record.
type Validator interface {
	Validate(ctx context.Context, record string) (validate.Result, error)
}

// Reporter receives the operator facing events of a run.
type Reporter interface {
	Plan(path string, total, last, start int, model string)
	Nothing(start, total int)
	Sentence(s sent.Sentence, total int)
	Committed(s sent.Sentence)
	Invalid(s sent.Sentence, files []string)
	Failed(s sent.Sentence, file string, err error)
	Interrupted(s sent.Sentence)
	Finished()
}

type Options struct {
	SentencesPath string
	CorpusPath    string
	LogDir        string

	// StartFrom overrides the resume index derived from the corpus.
	StartFrom *int

	// Model is reported to the operator.
	Model string
}

type Pipeline struct {
	Annotator Annotator
	Validator Validator
	Reporter  Reporter
	Logger    *slog.Logger
}

// Run processes the sentences from the resume index to the end of the
// input, stopping at the first sentence that does not commit. The returned
// error is reserved for failures outside a single sentence: unreadable input
// or corpus, unwritable corpus or diagnostics.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Summary, error) {
	logger := p.logger()

	if err := os.MkdirAll(filepath.Dir(opts.CorpusPath), 0o755); err != nil {
		return Summary{}, err
	}
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return Summary{}, err
	}

	logger.Debug("state", "state", "resolving")

	sentences, err := file.ReadSentencesFile(opts.SentencesPath)
	if err != nil {
		return Summary{}, err
	}

	last, err := checkpoint.ResolveFile(opts.CorpusPath)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving checkpoint: %w", err)
	}

	sum := Summary{
		Total: len(sentences),
		Last:  last,
		Start: checkpoint.Start(last, opts.StartFrom),
	}

	logger.Info("resume", "last", sum.Last, "start", sum.Start, "total", sum.Total)

	if sum.Start > sum.Total {
		p.Reporter.Nothing(sum.Start, sum.Total)
		sum.Status = NothingToDo
		return sum, nil
	}

	p.Reporter.Plan(opts.SentencesPath, sum.Total, sum.Last, sum.Start, opts.Model)

	corpus, err := os.OpenFile(opts.CorpusPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return sum, err
	}
	defer corpus.Close()

	diag := diagnostics{dir: opts.LogDir}

	logger.Debug("state", "state", "iterating")
	for _, s := range sentences[sum.Start-1:] {
		if ctx.Err() != nil {
			out := Outcome{Kind: Interrupted, Sentence: s, Err: ctx.Err()}
			p.Reporter.Interrupted(s)
			sum.Status = Cancelled
			sum.Halt = &out
			return sum, nil
		}

		p.Reporter.Sentence(s, sum.Total)

		out, err := p.step(ctx, corpus, diag, s)
		if err != nil {
			return sum, err
		}

		logger.Debug("outcome", "index", s.Index, "kind", out.Kind, "reason", out.Reason)

		if out.Kind != Committed {
			sum.Halt = &out
			sum.Status = Stopped
			if out.Kind == Interrupted {
				sum.Status = Cancelled
			}
			p.report(out)
			p.Reporter.Finished()
			return sum, nil
		}

		sum.Committed++
		p.Reporter.Committed(s)
	}

	logger.Debug("state", "state", "done")
	sum.Status = Done
	p.Reporter.Finished()
	return sum, nil
}

// step annotates, converts and validates one sentence, then appends it to
// the corpus or writes its diagnostics.
func (p *Pipeline) step(ctx context.Context, corpus *os.File, diag diagnostics, s sent.Sentence) (Outcome, error) {
	logger := p.logger()

	logger.Debug("state", "state", "annotating", "index", s.Index)
	tokens, err := p.Annotator.Annotate(ctx, s.Text)

	var record string
	if err == nil {
		logger.Debug("state", "state", "converting", "index", s.Index, "tokens", len(tokens))
		record, err = conllu.Format(tokens)
	}

	var res validate.Result
	if err == nil {
		logger.Debug("state", "state", "validating", "index", s.Index)
		res, err = p.Validator.Validate(ctx, record)
	}

	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Kind: Interrupted, Sentence: s, Err: ctx.Err()}, nil
		}

		path, werr := diag.failure(s, err)
		if werr != nil {
			return Outcome{}, werr
		}
		return Outcome{Kind: Halted, Reason: Failed, Sentence: s, Err: err, Files: []string{path}}, nil
	}

	if !res.Ok {
		files, werr := diag.invalid(s, tokens, record, res.Log)
		if werr != nil {
			return Outcome{}, werr
		}
		return Outcome{Kind: Halted, Reason: Invalid, Sentence: s, Files: files}, nil
	}

	logger.Debug("state", "state", "appending", "index", s.Index)
	if err := appendBlock(corpus, conllu.Block(s.Index, s.Text, record)); err != nil {
		return Outcome{}, fmt.Errorf("appending sentence %d to corpus: %w", s.Index, err)
	}

	return Outcome{Kind: Committed, Sentence: s}, nil
}

// appendBlock writes the whole block with a single write and flushes it to
// disk.
func appendBlock(corpus *os.File, block string) error {
	if _, err := io.WriteString(corpus, block); err != nil {
		return err
	}
	return corpus.Sync()
}

func (p *Pipeline) report(out Outcome) {
	switch {
	case out.Kind == Interrupted:
		p.Reporter.Interrupted(out.Sentence)
	case out.Reason == Invalid:
		p.Reporter.Invalid(out.Sentence, out.Files)
	default:
		p.Reporter.Failed(out.Sentence, out.Files[0], out.Err)
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}
