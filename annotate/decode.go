package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/revelaction/uzudt/conllu"
	sent "github.com/revelaction/uzudt/sentence"
)

// Token object keys of the model reply.
const (
	keyId       = "ID"
	keyForm     = "FORM"
	keyLemma    = "LEMMA"
	keyUpos     = "UPOS"
	keyHeadId   = "HEAD ID"
	keyHeadForm = "HEAD"
	keyDep      = "DEPREL"
)

// Decode parses the model reply text, which must be exactly a JSON array of
// token objects. Fields absent from an object or null are left nil.
func Decode(text string) (sent.Tokens, error) {
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		return nil, &MalformedResponseError{Text: text}
	}

	res := gjson.Parse(text)
	if !res.IsArray() {
		return nil, &UnexpectedShapeError{Got: kind(res), Text: text}
	}

	var tokens sent.Tokens
	var err error
	res.ForEach(func(_, elem gjson.Result) bool {
		var t sent.Token
		t, err = decodeToken(len(tokens), elem)
		if err != nil {
			return false
		}
		tokens = append(tokens, t)
		return true
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

func decodeToken(index int, elem gjson.Result) (sent.Token, error) {
	t := sent.Token{Raw: elem.Raw}
	if !elem.IsObject() {
		return t, nil
	}

	var err error
	if t.Id, err = intField(elem, keyId); err != nil {
		return t, &conllu.MalformedTokenError{Index: index, Field: keyId, Raw: elem.Raw}
	}
	if t.Head, err = intField(elem, keyHeadId); err != nil {
		return t, &conllu.MalformedTokenError{Index: index, Field: keyHeadId, Raw: elem.Raw}
	}

	t.Form = stringField(elem, keyForm)
	t.Lemma = stringField(elem, keyLemma)
	t.Upos = stringField(elem, keyUpos)
	t.HeadForm = stringField(elem, keyHeadForm)
	t.Dep = stringField(elem, keyDep)

	return t, nil
}

// intField accepts a JSON number or a string holding an integer.
func intField(elem gjson.Result, key string) (*int, error) {
	f := elem.Get(key)
	if !f.Exists() {
		return nil, nil
	}

	var n int
	switch f.Type {
	case gjson.Number:
		if f.Num != float64(int64(f.Num)) {
			return nil, fmt.Errorf("%s: not an integer: %s", key, f.Raw)
		}
		n = int(f.Int())
	case gjson.String:
		v, err := strconv.Atoi(strings.TrimSpace(f.Str))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		n = v
	default:
		return nil, fmt.Errorf("%s: not an integer: %s", key, f.Raw)
	}

	return &n, nil
}

func stringField(elem gjson.Result, key string) *string {
	f := elem.Get(key)
	if !f.Exists() || f.Type == gjson.Null {
		return nil
	}

	s := f.String()
	return &s
}

func kind(res gjson.Result) string {
	switch res.Type {
	case gjson.JSON:
		return "object"
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	}
	return res.Type.String()
}
