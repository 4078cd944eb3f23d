// Package edit is an interactive picker for the target categories the
// sampler draws sentences from.
package edit

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/uzudt/wiki"
)

type action int

const (
	actionAdd action = iota
	actionRemove
	actionList
	actionSave
	actionQuit
)

const maxSuggestions = 12

type command struct {
	action   action
	category string
}

type Handler struct {
	// Stats are the known categories with their article counts.
	Stats []wiki.CategoryStat

	Targets []string

	// Path is the targets file written on save and quit.
	Path string

	Out io.Writer

	known map[string]int
	dirty bool
}

func NewHandler(stats []wiki.CategoryStat, targets []string, path string, out io.Writer) *Handler {
	known := make(map[string]int, len(stats))
	for _, s := range stats {
		known[s.Category] = s.Articles
	}

	return &Handler{
		Stats:   stats,
		Targets: slices.Clone(targets),
		Path:    path,
		Out:     out,
		known:   known,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Out, "🔑 <category>: add, !<category>: remove, list, save, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("uzudt edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionHistory(history),
		)

		history = append(history, in)

		done, err := h.Exec(in)
		if err != nil {
			fmt.Fprintf(h.Out, "❌ %s\n", err)
			continue
		}

		if done {
			return nil
		}
	}
}

// Exec runs one REPL line. It reports whether the editor should stop.
func (h *Handler) Exec(in string) (bool, error) {
	cmd, err := parse(in)
	if err != nil {
		return false, err
	}

	switch cmd.action {
	case actionAdd:
		if _, ok := h.known[cmd.category]; !ok {
			return false, errors.New("There is no such category: " + cmd.category + ".")
		}
		if slices.Contains(h.Targets, cmd.category) {
			return false, errors.New("Category already selected.")
		}
		h.Targets = append(h.Targets, cmd.category)
		h.dirty = true
		fmt.Fprintf(h.Out, "✅ %s (%d)\n", cmd.category, len(h.Targets))

	case actionRemove:
		i := slices.Index(h.Targets, cmd.category)
		if i < 0 {
			return false, errors.New("Category is not selected.")
		}
		h.Targets = slices.Delete(h.Targets, i, i+1)
		h.dirty = true
		fmt.Fprintf(h.Out, "🗑 %s (%d)\n", cmd.category, len(h.Targets))

	case actionList:
		for i, c := range h.Targets {
			fmt.Fprintf(h.Out, "%3d. %s (%d)\n", i+1, c, h.known[c])
		}

	case actionSave:
		return false, h.save()

	case actionQuit:
		if h.dirty {
			return true, h.save()
		}
		return true, nil
	}

	return false, nil
}

func (h *Handler) save() error {
	if err := SaveTargets(h.Path, h.Targets); err != nil {
		return err
	}
	h.dirty = false
	fmt.Fprintf(h.Out, "💾 %d categories written to %s\n", len(h.Targets), h.Path)
	return nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.suggest(in.TextBeforeCursor())
	}
}

// suggest returns the categories starting with the text before the cursor.
// After a leading '!' only selected categories are offered.
func (h *Handler) suggest(before string) []prompt.Suggest {
	s := []prompt.Suggest{}
	if before == "" {
		return s
	}

	if rest, ok := strings.CutPrefix(before, "!"); ok {
		for _, c := range h.Targets {
			if strings.HasPrefix(c, rest) {
				s = append(s, prompt.Suggest{Text: "!" + c, Description: strconv.Itoa(h.known[c])})
			}
		}
		return s
	}

	for _, st := range h.Stats {
		if !strings.HasPrefix(st.Category, before) {
			continue
		}
		// Do not show the suggestion at the end of the text
		if len(before) < len(st.Category) {
			s = append(s, prompt.Suggest{Text: st.Category, Description: strconv.Itoa(st.Articles)})
		}
	}

	return s
}

func parse(in string) (command, error) {
	in = strings.TrimSpace(in)

	switch in {
	case "":
		return command{}, errors.New("No category given.")
	case "list":
		return command{action: actionList}, nil
	case "save":
		return command{action: actionSave}, nil
	case "quit":
		return command{action: actionQuit}, nil
	}

	if name, ok := strings.CutPrefix(in, "!"); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return command{}, errors.New("No category given to remove.")
		}
		return command{action: actionRemove, category: name}, nil
	}

	return command{action: actionAdd, category: in}, nil
}
