package sentence

// Sentence is one line of raw input text.
type Sentence struct {
	// Index is the 1-based position of the sentence in the input, after
	// blank lines are dropped.
	Index int

	Text string
}

// Token describes a word of the sentence as returned by the annotation
// service. Nil fields were absent in the service reply.
type Token struct {
	// The position of the word in the sentence, starting at 1.
	Id *int `json:"ID,omitempty"`

	// The unmodified word
	Form *string `json:"FORM,omitempty"`

	// The lemma of the word
	Lemma *string `json:"LEMMA,omitempty"`

	// The universal POS tag
	Upos *string `json:"UPOS,omitempty"`

	// The position of the head word, 0 for the root.
	Head *int `json:"HEAD ID,omitempty"`

	// The form of the head word. Informational only.
	HeadForm *string `json:"HEAD,omitempty"`

	// The dependency relation to the head
	Dep *string `json:"DEPREL,omitempty"`

	// Raw is the JSON object the token was decoded from.
	Raw string `json:"-"`
}

// Tokens is the ordered token list of one sentence.
type Tokens []Token

// RawJSON returns the tokens as they were received, as a JSON array.
func (ts Tokens) RawJSON() string {
	b := []byte{'['}
	for i, t := range ts {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, t.Raw...)
	}
	return string(append(b, ']'))
}
