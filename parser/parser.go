// Package parser gets the dependency parse of a sentence from an external
// parse service (spaCy behind a small HTTP endpoint).
package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revelaction/drawgram/sentence"
)

// ErrNoParse is returned when the service gives no tokens for a text.
var ErrNoParse = errors.New("no parse for sentence")

// Parser returns the parsed tokens of a text.
type Parser interface {
	Parse(ctx context.Context, text string) (sentence.Sentence, error)
}

const DefaultTimeout = 10 * time.Second

// Client calls the /parse endpoint of a parse service.
type Client struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

// NewClient returns a Client for the service at url, f.ex.
// http://localhost:8000. A zero timeout means DefaultTimeout.
func NewClient(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		endpoint: strings.TrimRight(url, "/"),
		client:   &http.Client{Timeout: timeout},
		log:      logger,
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Result []wireToken `json:"result"`
}

// wireToken is a token as served by the parse service.
type wireToken struct {
	Idx     int            `json:"idx"`
	Text    string         `json:"text"`
	Pos     string         `json:"pos"`
	Tag     string         `json:"tag"`
	Dep     string         `json:"dep"`
	HeadIdx int            `json:"head_idx"`
	Lemma   string         `json:"lemma"`
	Morph   sentence.Morph `json:"morph"`
}

func (w wireToken) token() sentence.Token {
	return sentence.Token{
		Idx:   w.Idx,
		Head:  w.HeadIdx,
		Pos:   w.Pos,
		Dep:   w.Dep,
		Tag:   w.Tag,
		Text:  w.Text,
		Lemma: w.Lemma,
		Morph: w.Morph,
	}
}

// Parse posts text to the service and returns the parsed sentence. The
// sentence keeps text as its Text.
func (c *Client) Parse(ctx context.Context, text string) (sentence.Sentence, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return sentence.Sentence{}, fmt.Errorf("marshal request: %w", err)
	}

	url := c.endpoint + "/parse"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return sentence.Sentence{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return sentence.Sentence{}, fmt.Errorf("HTTP POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return sentence.Sentence{}, fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(respBody))
	}

	var result parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return sentence.Sentence{}, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Result) == 0 {
		return sentence.Sentence{}, fmt.Errorf("%q: %w", text, ErrNoParse)
	}

	s := sentence.Sentence{Text: text, Tokens: make([]sentence.Token, 0, len(result.Result))}
	for _, w := range result.Result {
		s.Tokens = append(s.Tokens, w.token())
	}

	c.log.Debug().Str("url", url).Int("tokens", len(s.Tokens)).Msg("parsed sentence")
	return s, nil
}

// compile-time interface check
var _ Parser = (*Client)(nil)
