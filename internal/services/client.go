// HTTP client shared by every gateway
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://127.0.0.1:5000"
	defaultTimeout = 10 * time.Second
)

// Client performs JSON requests against the playlist API and decodes the [models.Result] envelope.
//
// The bearer token is read from the credential store on every request, so logging in or out
// takes effect without rebuilding the gateways. Requests are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      models.CredentialStore
	limiter    *rate.Limiter
	logger     *log.Logger
	messages   *shared.Messages
}

// ClientOpts contains configuration options for creating a [Client].
type ClientOpts struct {
	BaseURL     string
	HTTPClient  *http.Client
	Timeout     time.Duration
	RateLimit   float64 // requests per second, 0 disables
	Credentials models.CredentialStore
	Logger      *log.Logger
	Messages    *shared.Messages
}

// NewClient creates a new [Client]. A nil HTTPClient gets a fresh client bounded by Timeout.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.Messages == nil {
		opts.Messages = shared.NewMessages("en")
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		creds:      opts.Credentials,
		limiter:    limiter,
		logger:     opts.Logger,
		messages:   opts.Messages,
	}
}

// NewClientFromConfig builds a [Client] from the [shared.APIConfig] section.
func NewClientFromConfig(cfg shared.APIConfig, creds models.CredentialStore, logger *log.Logger, messages *shared.Messages) *Client {
	return NewClient(ClientOpts{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout(),
		RateLimit:   cfg.RateLimit,
		Credentials: creds,
		Logger:      logger,
		Messages:    messages,
	})
}

// Credentials returns the store the client reads its bearer token from.
func (c *Client) Credentials() models.CredentialStore { return c.creds }

// fail builds a failed result carrying the localized text for key.
func fail[T any](c *Client, key string) models.Result[T] {
	return models.Fail[T](c.messages.Get(key))
}

// request describes one call. An explicit token wins over the stored one.
type request struct {
	method string
	path   string
	body   any
	token  string
}

// call sends req with the stored bearer token and absorbs transport failures into the result.
func call[T any](ctx context.Context, c *Client, method, path string, body any) models.Result[T] {
	res, _ := send[T](ctx, c, request{method: method, path: path, body: body})
	return res
}

// send performs req. The error is non-nil only for transport failures (dial, timeout, unreadable or non-JSON body),
// in which case the result carries the generic failure message.
func send[T any](ctx context.Context, c *Client, req request) (models.Result[T], error) {
	requestID := shared.GenerateID()
	logger := c.logger.With("method", req.method, "path", req.path, "request_id", requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Warn("rate limiter wait aborted", "error", err)
			return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
	}

	var payload io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("failed to marshal body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, payload)
	if err != nil {
		logger.Error("failed to create request", "error", err)
		return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	token := req.token
	if token == "" && c.creds != nil {
		if stored, ok := c.creds.Read(ctx); ok {
			token = stored.Token
		}
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("request failed", "error", err)
		return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response", "status", resp.StatusCode, "error", err)
		return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("failed to read response: %w", err)
	}

	var result models.Result[T]
	if err := json.Unmarshal(data, &result); err != nil {
		logger.Warn("response is not a JSON envelope", "status", resp.StatusCode, "error", err)
		return fail[T](c, shared.MsgRequestFailed), fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		result.Success = false
	}
	if !result.Success && result.Message == "" {
		result.Message = c.messages.Get(shared.MsgRequestFailed)
	}

	logger.Debug("request complete", "status", resp.StatusCode, "success", result.Success, "elapsed", time.Since(start))
	return result, nil
}
