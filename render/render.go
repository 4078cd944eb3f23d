package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	sent "github.com/revelaction/uzudt/sentence"
)

// Reporter prints the progress of an annotation run for the operator.
type Reporter struct {
	Out io.Writer

	ok   *color.Color
	fail *color.Color
	info *color.Color
}

// NewReporter returns a Reporter writing to w. Colors are disabled when
// hasColor is false.
func NewReporter(w io.Writer, hasColor bool) *Reporter {
	r := &Reporter{
		Out:  w,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed, color.Bold),
		info: color.New(color.FgYellow),
	}

	if !hasColor {
		r.ok.DisableColor()
		r.fail.DisableColor()
		r.info.DisableColor()
	}

	return r
}

func (r *Reporter) Plan(path string, total, last, start int, model string) {
	fmt.Fprintf(r.Out, "Total sentences in %s: %d\n", path, total)
	fmt.Fprintf(r.Out, "Last processed (from gold): %d\n", last)
	fmt.Fprintf(r.Out, "Starting from sentence index: %d\n", start)
	fmt.Fprintf(r.Out, "Using model: %s\n\n", model)
}

func (r *Reporter) Nothing(start, total int) {
	r.info.Fprintf(r.Out, "Nothing to do: start_from=%d > total sentences=%d. Check the sentence file and the corpus.\n", start, total)
}

func (r *Reporter) Sentence(s sent.Sentence, total int) {
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", s.Index, total, s.Text)
}

func (r *Reporter) Committed(s sent.Sentence) {
	r.ok.Fprintln(r.Out, "   ✓ VALID")
}

func (r *Reporter) Invalid(s sent.Sentence, files []string) {
	r.fail.Fprintln(r.Out, "   ✗ INVALID, see:")
	for _, f := range files {
		fmt.Fprintf(r.Out, "       %s\n", f)
	}
	r.stopping()
}

func (r *Reporter) Failed(s sent.Sentence, file string, err error) {
	r.fail.Fprintf(r.Out, "   ✗ EXCEPTION, logged to %s\n", file)
	fmt.Fprintf(r.Out, "       %v\n", err)
	r.stopping()
}

func (r *Reporter) Interrupted(s sent.Sentence) {
	r.info.Fprintf(r.Out, "   interrupted at sentence %d, nothing written for it\n", s.Index)
}

func (r *Reporter) Finished() {
	fmt.Fprintln(r.Out, "\nRun finished. If it stopped on a failing sentence,")
	fmt.Fprintln(r.Out, "fix the issue (prompt, code, etc.), then rerun.")
	fmt.Fprintln(r.Out, "It will resume from the first sentence that is not yet in the gold file,")
	fmt.Fprintln(r.Out, "or from --start-from if you specify it explicitly.")
}

func (r *Reporter) stopping() {
	fmt.Fprintln(r.Out, "   Stopping so you can inspect and fix the problem.")
}
