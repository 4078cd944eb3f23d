package pipeline

import (
	sent "github.com/revelaction/uzudt/sentence"
)

// Kind tags the outcome of one sentence.
type Kind int

const (
	// Committed means the block was appended to the corpus.
	Committed Kind = iota

	// Halted means the sentence failed and the run stops.
	Halted

	// Interrupted means the run context was cancelled.
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case Committed:
		return "committed"
	case Halted:
		return "halted"
	case Interrupted:
		return "interrupted"
	}
	return "unknown"
}

// Reason tells why a sentence halted the run.
type Reason int

const (
	NoReason Reason = iota

	// Failed covers annotation, conversion and validator process errors.
	Failed

	// Invalid means the validator rejected the record.
	Invalid
)

func (r Reason) String() string {
	switch r {
	case Failed:
		return "failed"
	case Invalid:
		return "invalid"
	}
	return "none"
}

// Outcome is the result of processing one sentence.
type Outcome struct {
	Kind     Kind
	Reason   Reason
	Sentence sent.Sentence

	// Err is set for Failed and Interrupted outcomes.
	Err error

	// Files are the diagnostic files written for a halted sentence.
	Files []string
}

// Status is the end state of a run.
type Status int

const (
	// Done means every sentence from the start index was committed.
	Done Status = iota

	// NothingToDo means the start index is past the input.
	NothingToDo

	// Stopped means a sentence halted the run.
	Stopped

	// Cancelled means the run context was cancelled.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case NothingToDo:
		return "nothing to do"
	case Stopped:
		return "halted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Summary describes a finished run.
type Summary struct {
	Status Status

	Total int

	// Last is the checkpoint found in the corpus at start.
	Last int

	Start int

	// Committed is the number of blocks appended by this run.
	Committed int

	// Halt is the outcome that stopped the run, if any.
	Halt *Outcome
}
