// Package checkpoint recovers the resume position of an annotation run from
// the corpus it appends to.
package checkpoint

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/uzudt/conllu"
)

const header = conllu.SentIdComment + conllu.SentIdPrefix

// Resolve returns the greatest N of the "# sent_id = auto-N" lines of r, or
// 0 if there is none. Headers that do not carry an integer are skipped.
func Resolve(r io.Reader) (int, error) {
	last := 0

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if n, ok := parse(line); ok && n > last {
			last = n
		}

		if err == io.EOF {
			return last, nil
		}
		if err != nil {
			return 0, err
		}
	}
}

// ResolveFile resolves the corpus at path. A missing corpus resolves to 0.
func ResolveFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	return Resolve(f)
}

// Start returns the 1-based index to resume from: override when given,
// last+1 otherwise, never below 1.
func Start(last int, override *int) int {
	start := last + 1
	if override != nil {
		start = *override
	}
	if start < 1 {
		start = 1
	}
	return start
}

func parse(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, header) {
		return 0, false
	}

	// a leading sign is accepted, "auto-+9" is 9
	n, err := strconv.Atoi(line[strings.LastIndex(line, conllu.SentIdPrefix)+len(conllu.SentIdPrefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
