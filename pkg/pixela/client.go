// Package pixela is a minimal client for the parts of the Pixela graph API
// that pixtrack needs: adding a pixel and reading one back.
package pixela

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/stefanpenner/pixtrack/pkg/observability"
	"github.com/stefanpenner/pixtrack/pkg/store"
)

// DefaultBaseURL is the public Pixela endpoint.
const DefaultBaseURL = "https://pixe.la/v1"

// DefaultFailure is reported when the remote side gives no reason.
const DefaultFailure = "Failed to track activity"

const tokenHeader = "X-USER-TOKEN"

// maxBody bounds how much of a response we are willing to decode.
const maxBody = 1 << 20

// APIError is a request the remote side answered but did not accept.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("pixela returned HTTP %d", e.StatusCode)
}

// Client talks to a Pixela-compatible API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL whose requests time out after timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type incrementRequest struct {
	Date     string `json:"date"`
	Quantity string `json:"quantity"`
}

type incrementResponse struct {
	Message   string `json:"message"`
	IsSuccess bool   `json:"isSuccess"`
}

// Increment records one unit for graphID on date.
// It succeeds only when the response is 2xx and carries isSuccess: true.
func (c *Client) Increment(ctx context.Context, creds store.Credentials, graphID string, date store.Date) (err error) {
	started := time.Now()
	defer func() { observability.RecordRequest("increment", outcome(err), started) }()

	body, err := json.Marshal(incrementRequest{Date: date.Pixel(), Quantity: "1"})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.graphURL(creds.Username, graphID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(tokenHeader, creds.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting pixel: %w", err)
	}
	defer resp.Body.Close()

	var result incrementResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&result); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: DefaultFailure + ": malformed response"}
	}
	if !isSuccess(resp.StatusCode) || !result.IsSuccess {
		msg := result.Message
		if msg == "" {
			msg = DefaultFailure
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

type pixelResponse struct {
	Quantity json.RawMessage `json:"quantity"`
	Message  string          `json:"message"`
}

// Quantity reads the pixel quantity of graphID on date. A response without a
// quantity reports zero.
func (c *Client) Quantity(ctx context.Context, creds store.Credentials, graphID string, date store.Date) (q int64, err error) {
	started := time.Now()
	defer func() { observability.RecordRequest("quantity", outcome(err), started) }()

	endpoint := c.graphURL(creds.Username, graphID) + "/" + url.PathEscape(date.Pixel())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(tokenHeader, creds.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("getting pixel: %w", err)
	}
	defer resp.Body.Close()

	var result pixelResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&result)
	if !isSuccess(resp.StatusCode) {
		return 0, &APIError{StatusCode: resp.StatusCode, Message: result.Message}
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("decoding pixel: %w", decodeErr)
	}
	return ParseQuantity(result.Quantity)
}

// ParseQuantity reads a quantity that may be encoded as a JSON string or
// number. Fractions are truncated toward zero. Absent or null is zero.
func ParseQuantity(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("invalid quantity %s: %w", raw, err)
		}
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return int64(f), nil
}

func (c *Client) graphURL(username, graphID string) string {
	return c.BaseURL + "/users/" + url.PathEscape(username) + "/graphs/" + url.PathEscape(graphID)
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func outcome(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.As(err, &apiErr):
		return observability.OutcomeRemote
	default:
		return observability.OutcomeFailure
	}
}
