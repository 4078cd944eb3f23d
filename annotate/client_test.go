package annotate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrompt(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uz_prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("You are an Uzbek UD annotator."), 0o644))
	return path
}

func responsesBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"output": []any{
			map[string]any{"type": "reasoning", "summary": []any{}},
			map[string]any{
				"type": "message",
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text},
				},
			},
		},
	})
	return string(b)
}

func TestNewPromptNotFound(t *testing.T) {
	_, err := New(Options{Model: "m", PromptPath: filepath.Join(t.TempDir(), "missing.txt")})

	var pnf *PromptNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAnnotate(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		_, _ = io.WriteString(w, responsesBody(`[{"ID":1,"FORM":"Salom","UPOS":"INTJ","HEAD ID":0,"DEPREL":"root"}]`))
	}))
	defer srv.Close()

	c, err := New(Options{Model: "gpt-5-mini", APIURL: srv.URL + "/v1/", APIKey: "sk-test", PromptPath: writePrompt(t)})
	require.NoError(t, err)

	tokens, err := c.Annotate(context.Background(), "Salom")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "Salom", *tokens[0].Form)

	assert.Equal(t, "gpt-5-mini", got.Model)
	require.Len(t, got.Input, 2)
	assert.Equal(t, "system", got.Input[0].Role)
	assert.Equal(t, "You are an Uzbek UD annotator.", got.Input[0].Content)
	assert.Equal(t, "user", got.Input[1].Role)
	assert.Equal(t, "Sentence: \"Salom\"\nReturn ONLY a JSON array of token objects.", got.Input[1].Content)
}

func TestAnnotateProse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, responsesBody("Sure! Here are the tokens."))
	}))
	defer srv.Close()

	c, err := New(Options{Model: "m", APIURL: srv.URL, PromptPath: writePrompt(t)})
	require.NoError(t, err)

	_, err = c.Annotate(context.Background(), "Salom")
	var mre *MalformedResponseError
	require.ErrorAs(t, err, &mre)
}

func TestAnnotateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"rate limited"}}`)
	}))
	defer srv.Close()

	c, err := New(Options{Model: "m", APIURL: srv.URL, PromptPath: writePrompt(t)})
	require.NoError(t, err)

	_, err = c.Annotate(context.Background(), "Salom")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Body, "rate limited")
}

func TestAnnotateNoOutputText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"output":[]}`)
	}))
	defer srv.Close()

	c, err := New(Options{Model: "m", APIURL: srv.URL, PromptPath: writePrompt(t)})
	require.NoError(t, err)

	_, err = c.Annotate(context.Background(), "Salom")
	var mre *MalformedResponseError
	require.ErrorAs(t, err, &mre)
}

func TestReplyTextFallback(t *testing.T) {
	text, ok := replyText([]byte(`{"output_text":"[]"}`))
	require.True(t, ok)
	assert.Equal(t, "[]", text)
}
