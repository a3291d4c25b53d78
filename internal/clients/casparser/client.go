// Package casparser provides a client for the external statement parser
// sidecar. The sidecar owns password handling and document layout extraction;
// this client only submits documents and decodes the structured output.
package casparser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tealscan/tealscan/internal/common"
	"github.com/tealscan/tealscan/internal/interfaces"
	"github.com/tealscan/tealscan/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8085"
	DefaultTimeout   = 60 * time.Second
	DefaultRateLimit = 5 // requests per second
)

var (
	// ErrBadPassword means the parser rejected the document password.
	ErrBadPassword = errors.New("casparser: incorrect document password")

	// ErrParseFailed means the parser could not extract a statement.
	ErrParseFailed = errors.New("casparser: statement could not be parsed")
)

// Compile-time interface check
var _ interfaces.StatementParser = (*Client)(nil)

// Client implements the StatementParser interface over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new statement parser client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// errorBody is the sidecar's error response shape.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ParseStatement submits the document and password to the parser sidecar and
// decodes the structured statement from its response.
func (c *Client) ParseStatement(ctx context.Context, doc []byte, password string) (*models.Statement, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "statement.pdf")
	if err != nil {
		return nil, fmt.Errorf("create multipart: %w", err)
	}
	if _, err := part.Write(doc); err != nil {
		return nil, fmt.Errorf("write multipart: %w", err)
	}
	if err := mw.WriteField("password", password); err != nil {
		return nil, fmt.Errorf("write password field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", &body)
	if err != nil {
		return nil, fmt.Errorf("build parse request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(doc)).
		Dur("duration", time.Since(start)).
		Msg("Parser response")

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrBadPassword
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var eb errorBody
		if json.NewDecoder(resp.Body).Decode(&eb) == nil && eb.Code == "bad_password" {
			return nil, ErrBadPassword
		}
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, eb.Error)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: parser returned status %d: %s", ErrParseFailed, resp.StatusCode, bytes.TrimSpace(raw))
	}

	stmt, err := DecodeStatement(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("folios", len(stmt.Folios)).
		Int("schemes", stmt.SchemeCount()).
		Msg("Statement parsed")

	return stmt, nil
}

// DecodeStatement decodes parser JSON output into a Statement. This is the
// engine's input contract: pre-parsed statements can be fed in directly
// without a sidecar round-trip.
func DecodeStatement(r io.Reader) (*models.Statement, error) {
	var stmt models.Statement
	if err := json.NewDecoder(r).Decode(&stmt); err != nil {
		return nil, fmt.Errorf("%w: decode statement JSON: %v", ErrParseFailed, err)
	}
	if len(stmt.Folios) == 0 {
		return nil, fmt.Errorf("%w: statement contains no folios", ErrParseFailed)
	}
	return &stmt, nil
}
