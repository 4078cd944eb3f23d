package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reply = `[{"ID":1,"FORM":"Salom","LEMMA":"salom","UPOS":"INTJ","HEAD ID":0,"HEAD":"ROOT","DEPREL":"root"}]`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := json.Marshal(map[string]any{"output_text": reply})
		_, _ = w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// workspace prepares a working directory with a config, a prompt, a
// validator stand-in exiting with exit and one input sentence.
func workspace(t *testing.T, apiURL string, exit int) {
	t.Helper()
	chdir(t, t.TempDir())

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	}

	write("uzudt.yaml", fmt.Sprintf(`
annotate:
  api_url: %s
  api_key: sk-test
validator:
  python: sh
  script: tools/validate.sh
`, apiURL))
	write("prompts/uz_prompt.txt", "You are an Uzbek UD annotator.")
	write("tools/validate.sh", fmt.Sprintf("#!/bin/sh\necho checked\nexit %d\n", exit))
	write("data/raw/uz_sentences.txt", "Salom\n")
}

func runArgs(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), append([]string{"uzudt"}, args...), UI{Out: &out, Err: &errOut})
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := runArgs("version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "uzudt version dev (commit: none)\n", out)
}

func TestAnnotateCommits(t *testing.T) {
	workspace(t, newServer(t).URL, 0)

	code, out, _ := runArgs("annotate")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "[1/1] Salom")

	b, err := os.ReadFile("data/gold/uzudt_auto.conllu")
	require.NoError(t, err)
	assert.Equal(t, "# sent_id = auto-1\n# text = Salom\n1\tSalom\tsalom\tINTJ\t_\t_\t0\troot\t_\t_\n\n", string(b))

	// a second run has nothing left to do
	code, out, _ = runArgs("annotate")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Nothing to do")
}

func TestAnnotateHalts(t *testing.T) {
	workspace(t, newServer(t).URL, 1)

	code, out, _ := runArgs("annotate")
	assert.Equal(t, exitHalted, code)
	assert.Contains(t, out, "INVALID")

	_, err := os.Stat("data/gold/uzudt_auto.conllu")
	if err == nil {
		b, _ := os.ReadFile("data/gold/uzudt_auto.conllu")
		assert.Empty(t, string(b))
	}

	for _, name := range []string{"sentence_0001.json", "sentence_0001.conllu", "sentence_0001.val.log"} {
		assert.FileExists(t, filepath.Join("data/logs", name))
	}
}

func TestAnnotateMissingPrompt(t *testing.T) {
	workspace(t, "http://127.0.0.1:0", 0)
	require.NoError(t, os.Remove("prompts/uz_prompt.txt"))

	code, _, errOut := runArgs("annotate")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "uzudt: ")
	assert.Contains(t, errOut, "uz_prompt.txt")
}

func TestStatJSON(t *testing.T) {
	workspace(t, newServer(t).URL, 0)

	code, _, _ := runArgs("annotate", "--model", "gpt-test")
	require.Equal(t, exitOK, code)

	code, out, _ := runArgs("stat", "--json")
	require.Equal(t, exitOK, code)

	var got struct {
		Sentences int            `json:"sentences"`
		Tokens    int            `json:"tokens"`
		Upos      map[string]int `json:"upos"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Sentences)
	assert.Equal(t, 1, got.Tokens)
	assert.Equal(t, 1, got.Upos["INTJ"])
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(io.Discard, "info", false)
	require.NoError(t, err)
	assert.False(t, l.Enabled(context.Background(), 0))

	l, err = newLogger(io.Discard, "info", true)
	require.NoError(t, err)
	assert.True(t, l.Enabled(context.Background(), -4))

	_, err = newLogger(io.Discard, "loud", false)
	assert.Error(t, err)
}
