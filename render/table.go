package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/revelaction/uzudt/sample"
	"github.com/revelaction/uzudt/stat"
	"github.com/revelaction/uzudt/wiki"
)

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}

// Categories prints the first top categories. A top of zero or less prints
// all of them.
func Categories(w io.Writer, stats []wiki.CategoryStat, top int) {
	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "Category", "Articles"})
	for i, s := range stats {
		tbl.AppendRow(table.Row{i + 1, s.Category, s.Articles})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d categories", len(stats)), ""})

	fmt.Fprintln(w, tbl.Render())
}

// Samples prints the sentences collected per category against its target.
func Samples(w io.Writer, counts []sample.Count, articles int) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Category", "File", "Sentences", "Target"})

	total := 0
	for _, c := range counts {
		tbl.AppendRow(table.Row{c.Category, c.Slug + ".txt", c.Count, c.Target})
		total += c.Count
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d articles", articles), "", total, ""})

	fmt.Fprintln(w, tbl.Render())
}

// Stats prints the corpus statistics and the label frequencies.
func Stats(w io.Writer, s stat.Stats) {
	fmt.Fprintf(w, "Sentences: %d\n", s.NumSentences)
	fmt.Fprintf(w, "Tokens: %d\n", s.NumTokens)
	fmt.Fprintf(w, "Tokens per sentence (mean): %.2f\n\n", s.TokensPerSentenceMean)

	lengths := make([]int, 0, len(s.TokensPerSentenceDis))
	for n := range s.TokensPerSentenceDis {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Tokens", "Sentences"})
	for _, n := range lengths {
		tbl.AppendRow(table.Row{n, s.TokensPerSentenceDis[n]})
	}
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintln(w)

	counts(w, "UPOS", stat.Sorted(s.Upos))
	fmt.Fprintln(w)
	counts(w, "DEPREL", stat.Sorted(s.Deprel))
}

func counts(w io.Writer, label string, cs []stat.Count) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{label, "Count"})
	for _, c := range cs {
		tbl.AppendRow(table.Row{c.Label, c.Count})
	}
	fmt.Fprintln(w, tbl.Render())
}
