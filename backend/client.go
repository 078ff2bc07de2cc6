package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/sse"
)

// Interface compliance checks.
var (
	_ studypal.ChatService  = (*Client)(nil)
	_ studypal.CanvasSolver = (*Client)(nil)
)

// Client talks to one StudyPal backend service.
type Client struct {
	baseURL     string
	userID      string
	httpClient  *http.Client
	idleTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the service base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserID sets the user identifier sent with chat and session requests.
func WithUserID(id string) Option {
	return func(c *Client) { c.userID = id }
}

// WithIdleTimeout fails a chat stream that delivers nothing for d.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Client) { c.idleTimeout = d }
}

// WithLogger sets the logger for request and stream diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userID:     defaultUserID,
		httpClient: http.DefaultClient,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stream sends a chat message and returns the streamed reply.
func (c *Client) Stream(ctx context.Context, req studypal.ChatRequest) (studypal.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	body := apiChatRequest{Message: req.Message, UserID: c.userOf(req)}
	if req.SessionID != "" {
		body.SessionID = &req.SessionID
	}

	resp, err := c.do(ctx, http.MethodPost, chatStreamPath, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}
	c.logger.Debug("chat stream opened", "session_id", req.SessionID)

	opts := []sse.Option{sse.WithLogger(c.logger)}
	if c.idleTimeout > 0 {
		opts = append(opts, sse.WithIdleTimeout(c.idleTimeout))
	}
	return sse.NewStream(ctx, resp.Body, opts...), nil
}

// NewSession asks the backend for a fresh session.
func (c *Client) NewSession(ctx context.Context) (string, error) {
	var out apiNewSessionResponse
	if err := c.call(ctx, http.MethodPost, newSessionPath, apiNewSessionRequest{UserID: c.userID}, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// DeleteSession discards the backend history of session id.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, sessionPath+url.PathEscape(id), nil, nil)
}

// Solve sends a PNG data URI of a hand-drawn problem to the solver. A
// solver-side failure is reported in the Solution, not as an error.
func (c *Client) Solve(ctx context.Context, image string) (studypal.Solution, error) {
	var out apiSolveResponse
	if err := c.call(ctx, http.MethodPost, solvePath, apiSolveRequest{Image: image}, &out); err != nil {
		return studypal.Solution{}, err
	}
	return studypal.Solution{Success: out.Success, HTML: out.Solution, Error: out.Error}, nil
}

// Health reports whether the service answers as healthy.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var out apiHealthResponse
	if err := c.call(ctx, http.MethodGet, healthPath, nil, &out); err != nil {
		return false, err
	}
	return out.Status == healthyStatus, nil
}

func (c *Client) userOf(req studypal.ChatRequest) string {
	if req.UserID != "" {
		return req.UserID
	}
	return c.userID
}

// call performs a request and decodes a JSON response into out when out is
// non-nil.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return parseHTTPError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("backend: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	return resp, nil
}

func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("backend: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("backend: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
}
