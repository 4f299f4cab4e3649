package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ecolink/ecolink/internal/ai"
	"github.com/ecolink/ecolink/internal/utils"
)

const (
	DefaultBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	contentType     = "application/json"
	maxResponseSize = 1 << 20
	errorBodyLimit  = 200
)

// HTTPClient is the subset of *http.Client used by RESTGenerator.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTGenerator calls the generateContent endpoint directly with the API key
// passed as the "key" query parameter.
type RESTGenerator struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	HTTPClient HTTPClient
}

type restRequest struct {
	Contents []restContent `json:"contents"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text *string `json:"text,omitempty"`
}

type restResponse struct {
	Candidates []struct {
		Content *restContent `json:"content"`
	} `json:"candidates"`
}

func NewRESTGenerator(baseURL, apiKey, model string, timeout time.Duration) (*RESTGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &RESTGenerator{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		ModelName:  model,
		HTTPClient: &http.Client{Timeout: timeout},
	}, nil
}

func (g *RESTGenerator) Model() string {
	if g == nil {
		return ""
	}
	return g.ModelName
}

// GenerateContent posts the prompt and returns the text of the first part of
// the first candidate.
func (g *RESTGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.HTTPClient == nil {
		return "", ai.NewTransportError(0, false, errors.New("gemini rest generator is not initialized"))
	}

	endpoint, err := g.endpoint()
	if err != nil {
		return "", ai.NewTransportError(0, false, err)
	}

	body, err := json.Marshal(restRequest{
		Contents: []restContent{{Parts: []restPart{{Text: &prompt}}}},
	})
	if err != nil {
		return "", ai.NewTransportError(0, false, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", ai.NewTransportError(0, false, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		temporary := !errors.Is(err, context.Canceled)
		return "", ai.NewTransportError(0, temporary, fmt.Errorf("POST %s: %w", redact(endpoint), unwrapURLError(err)))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", ai.NewTransportError(resp.StatusCode, true, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ai.NewTransportError(resp.StatusCode, ai.TemporaryStatus(resp.StatusCode),
			fmt.Errorf("bad status: %s: %s", resp.Status, utils.TruncateForLog(string(data), errorBodyLimit)))
	}

	return parseRESTResponse(data)
}

func (g *RESTGenerator) endpoint() (*url.URL, error) {
	base := strings.TrimRight(g.BaseURL, "/")
	u, err := url.Parse(fmt.Sprintf("%s/models/%s:generateContent", base, url.PathEscape(g.ModelName)))
	if err != nil {
		return nil, fmt.Errorf("build endpoint url: %w", err)
	}

	q := u.Query()
	q.Set("key", g.APIKey)
	u.RawQuery = q.Encode()
	return u, nil
}

func parseRESTResponse(data []byte) (string, error) {
	var payload restResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", ai.NewParseError(fmt.Errorf("decode response: %w", err))
	}

	if len(payload.Candidates) == 0 {
		return "", ai.NewParseError(errors.New("response has no candidates"))
	}

	content := payload.Candidates[0].Content
	if content == nil {
		return "", ai.NewParseError(errors.New("candidate has no content"))
	}

	if len(content.Parts) == 0 {
		return "", ai.NewParseError(errors.New("content has no parts"))
	}

	text := content.Parts[0].Text
	if text == nil {
		return "", ai.NewParseError(errors.New("first part has no text"))
	}

	return *text, nil
}

// redact hides the API key so URLs can appear in errors and logs.
func redact(u *url.URL) string {
	clone := *u
	q := clone.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	clone.RawQuery = q.Encode()
	return clone.String()
}

// unwrapURLError drops the *url.Error wrapper, whose message embeds the full
// request URL including the key.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
