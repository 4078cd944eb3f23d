// Package annotate asks a text generation service for the dependency
// annotation of a sentence.
package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	sent "github.com/revelaction/uzudt/sentence"
)

const responsesPath = "/responses"

// Reply text locations in a Responses API body, tried in order.
var textPaths = []string{
	`output.#(type=="message").content.#(type=="output_text").text`,
	`output.0.content.0.text`,
	`output_text`,
}

type Options struct {
	Model      string
	APIURL     string
	APIKey     string
	PromptPath string

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client sends one request per sentence. It does not retry.
type Client struct {
	model  string
	url    string
	apiKey string
	prompt string

	httpClient *http.Client
	logger     *slog.Logger
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model string    `json:"model"`
	Input []message `json:"input"`
}

// LoadPrompt reads the system instruction template.
func LoadPrompt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &PromptNotFoundError{Path: path, Err: err}
	}
	return string(b), nil
}

// New creates a Client. The prompt template is read once, here.
func New(opts Options) (*Client, error) {
	prompt, err := LoadPrompt(opts.PromptPath)
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		model:      opts.Model,
		url:        strings.TrimRight(opts.APIURL, "/") + responsesPath,
		apiKey:     opts.APIKey,
		prompt:     prompt,
		httpClient: hc,
		logger:     logger,
	}, nil
}

// Model returns the model name sent with each request.
func (c *Client) Model() string {
	return c.model
}

// Annotate returns the tokens of the sentence as annotated by the model.
func (c *Client) Annotate(ctx context.Context, sentence string) (sent.Tokens, error) {
	body, err := json.Marshal(request{
		Model: c.model,
		Input: []message{
			{Role: "system", Content: c.prompt},
			{Role: "user", Content: UserMessage(sentence)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to annotation service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	c.logger.Debug("annotation response", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	text, ok := replyText(data)
	if !ok {
		return nil, &MalformedResponseError{Text: string(data)}
	}

	return Decode(text)
}

// UserMessage embeds the sentence in the user turn of the request.
func UserMessage(sentence string) string {
	return "Sentence: \"" + sentence + "\"\nReturn ONLY a JSON array of token objects."
}

func replyText(body []byte) (string, bool) {
	for _, p := range textPaths {
		if r := gjson.GetBytes(body, p); r.Exists() && r.Type == gjson.String {
			return r.Str, true
		}
	}
	return "", false
}
