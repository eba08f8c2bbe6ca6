package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/dailylit-backend/internal/pkg/httpx"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

// Task types accepted by the embedding endpoint.
const (
	TaskSemanticSimilarity = "SEMANTIC_SIMILARITY"
	TaskRetrievalDocument  = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery     = "RETRIEVAL_QUERY"
)

// Client is the Gemini API client used by the recommendation pipeline.
type Client interface {
	// EmbedContent returns one vector for the given text.
	EmbedContent(ctx context.Context, text string, taskType string) ([]float64, error)

	// GenerateContent returns the raw model text for a single-turn prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	embedModel string
	httpClient *http.Client

	// Embedding calls retry once: a zero-vector fallback hurts retrieval far
	// more than a neutral rerank score does, so generation retries zero times.
	embedRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("GEMINI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}

	embedModel := strings.TrimSpace(os.Getenv("GEMINI_EMBED_MODEL"))
	if embedModel == "" {
		embedModel = "gemini-embedding-001"
	}

	timeoutSec := 60
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:          log.With("service", "GeminiClient"),
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        model,
		embedModel:   embedModel,
		httpClient:   &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		embedRetries: 1,
	}, nil
}

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *geminiHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &geminiHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path string, body any, out any, maxRetries int) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if out == nil {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("gemini decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("Gemini request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

// -------------------- Embeddings --------------------

type embedContentRequest struct {
	Content  contentPayload `json:"content"`
	TaskType string         `json:"taskType,omitempty"`
}

type contentPayload struct {
	Parts []textPart `json:"parts"`
}

type textPart struct {
	Text string `json:"text"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

func (c *client) EmbedContent(ctx context.Context, text string, taskType string) ([]float64, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		clean = " "
	}

	req := embedContentRequest{
		Content:  contentPayload{Parts: []textPart{{Text: clean}}},
		TaskType: taskType,
	}

	var resp embedContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:embedContent", c.embedModel)
	if err := c.do(ctx, path, req, &resp, c.embedRetries); err != nil {
		return nil, err
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embedding response missing values; model=%s", c.embedModel)
	}
	return resp.Embedding.Values, nil
}

// -------------------- Generation --------------------

type generateContentRequest struct {
	Contents []contentPayload `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []textPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req := generateContentRequest{
		Contents: []contentPayload{{Parts: []textPart{{Text: prompt}}}},
	}

	var resp generateContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.do(ctx, path, req, &resp, 0); err != nil {
		return "", err
	}

	var out strings.Builder
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			out.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", fmt.Errorf("gemini response contained no text; model=%s", c.model)
	}
	return out.String(), nil
}

// unavailableClient stands in when no API key is configured. Every call fails
// fast, which the pipeline's fallback paths already absorb.
type unavailableClient struct {
	reason string
}

func NewUnavailableClient(reason string) Client {
	return &unavailableClient{reason: reason}
}

func (c *unavailableClient) EmbedContent(ctx context.Context, text string, taskType string) ([]float64, error) {
	return nil, fmt.Errorf("gemini client unavailable: %s", c.reason)
}

func (c *unavailableClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("gemini client unavailable: %s", c.reason)
}
