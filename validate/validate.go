// Package validate runs the UD validate.py rule checker on a record.
package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

type Options struct {
	// Python is the interpreter running Script.
	Python string

	// Script is the path of validate.py.
	Script string

	Lang  string
	Level int

	Logger *slog.Logger
}

// Result is the outcome of one validation.
type Result struct {
	Ok bool

	// Log is the standard output and standard error of the checker.
	Log string

	ExitCode int
}

// Validator checks records with an external process.
type Validator struct {
	opts   Options
	logger *slog.Logger
}

// New returns a Validator. The checker script must exist.
func New(opts Options) (*Validator, error) {
	if _, err := os.Stat(opts.Script); err != nil {
		return nil, fmt.Errorf("could not find validate.py at %s, clone UD tools under tools/ud-tools: %w", opts.Script, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Validator{opts: opts, logger: logger}, nil
}

// Validate writes record to a temporary file and runs the checker on it. A
// zero exit status passes. An error is returned only when the checker could
// not be run.
func (v *Validator) Validate(ctx context.Context, record string) (Result, error) {
	tmp, err := os.CreateTemp("", "uzudt-*.conllu")
	if err != nil {
		return Result{}, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(record); err != nil {
		tmp.Close()
		return Result{}, err
	}
	if err := tmp.Close(); err != nil {
		return Result{}, err
	}

	cmd := exec.CommandContext(ctx, v.opts.Python, v.Args(tmp.Name())...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	res := Result{Log: stdout.String() + "\n" + stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Ok = true
	case errors.As(err, &exitErr):
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, fmt.Errorf("running %s: %w", v.opts.Python, err)
	}

	v.logger.Debug("validation", "ok", res.Ok, "exit", res.ExitCode)
	return res, nil
}

// Args returns the checker arguments for the file at path.
func (v *Validator) Args(path string) []string {
	return []string{
		v.opts.Script,
		fmt.Sprintf("--lang=%s", v.opts.Lang),
		fmt.Sprintf("--level=%d", v.opts.Level),
		path,
	}
}
