// Package logiwa implements the shipment ports against the Logiwa integration API.
package logiwa

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

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// maxResponseSize is the maximum allowed response size from the API (32MB).
// A full page of orders with details is large.
const maxResponseSize = 32 * 1024 * 1024

var (
	ErrUnauthorized             = errors.New("logiwa: unauthorized")
	ErrThrottled                = errors.New("logiwa: request throttled")
	ErrThrottleRetriesExhausted = errors.New("logiwa: throttle retries exhausted")
	ErrServerError              = errors.New("logiwa: server error")
	ErrRequestFailed            = errors.New("logiwa: request failed")
	ErrUnavailable              = errors.New("logiwa: api unavailable")
	ErrBadResponse              = errors.New("logiwa: invalid response")
)

// APIError describes a non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("logiwa: HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code to a sentinel error
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusForbidden, e.StatusCode == http.StatusTooManyRequests:
		return ErrThrottled
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode >= 500:
		return ErrServerError
	default:
		return ErrRequestFailed
	}
}

// Limiter gates every outbound request
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Client talks to the Logiwa integration API.
// A single Client may be shared by concurrent partition collectors; the limiter is shared with it.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    Limiter
	logger     *zap.Logger
	onThrottle func()
}

// Compile-time interface checks
var (
	_ shipment.PageFetcher        = (*Client)(nil)
	_ shipment.CredentialProvider = (*Client)(nil)
)

// NewClient creates a new API client
func NewClient(config *Config, limiter Limiter, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		limiter: limiter,
		logger:  logger,
	}, nil
}

// OnThrottle registers fn to be called before every throttle retry.
// Must be called before the client is shared.
func (c *Client) OnThrottle(fn func()) {
	c.onThrottle = fn
}

// ---------------------------------------------------------------------------
// Paging
// ---------------------------------------------------------------------------

// FetchPage fetches one page of raw order documents.
// Throttled responses are retried with jittered exponential backoff up to MaxThrottleRetries.
func (c *Client) FetchPage(ctx context.Context, cred shipment.Credential, req shipment.PageRequest) (shipment.Page, error) {
	body := SearchRequest{
		OrderDateStart:           FormatDate(req.Window.Start, c.config.Location),
		OrderDateEnd:             FormatDate(req.Window.End, c.config.Location),
		WarehouseID:              req.WarehouseID,
		PageSize:                 req.PageSize,
		SelectedPageIndex:        req.PageIndex,
		IsGetOrderDetails:        true,
		IsGetCustomerAddressInfo: true,
	}
	if req.ModifiedSince != nil {
		since := FormatDate(*req.ModifiedSince, c.config.Location)
		body.LastModifiedDateStart = &since
	}

	var resp SearchResponse
	if err := c.postJSON(ctx, cred, c.config.SearchPath, body, &resp); err != nil {
		return shipment.Page{}, fmt.Errorf("warehouse %d page %d: %w", req.WarehouseID, req.PageIndex, err)
	}

	return shipment.Page{Index: req.PageIndex, Documents: resp.Data}, nil
}

// postJSON sends body as JSON and decodes the response into out, retrying throttled attempts
func (c *Client) postJSON(ctx context.Context, cred shipment.Credential, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("logiwa: failed to encode request: %w", err)
	}

	raw, err := c.withThrottleRetry(ctx, path, func() ([]byte, error) {
		return c.doRequest(ctx, http.MethodPost, c.config.url(path), "application/json", cred, payload)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// withThrottleRetry runs attempt until it succeeds, fails with a non-throttle error,
// or the retry cap is reached
func (c *Client) withThrottleRetry(ctx context.Context, path string, attempt func() ([]byte, error)) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.ThrottleBackoff
	policy.MaxInterval = c.config.ThrottleMaxBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0.5
	policy.MaxElapsedTime = 0

	var result []byte
	operation := func() error {
		body, err := attempt()
		if err == nil {
			result = body
			return nil
		}
		if errors.Is(err, ErrThrottled) {
			return err
		}
		return backoff.Permanent(err)
	}

	retries := 0
	notify := func(err error, wait time.Duration) {
		retries++
		if c.onThrottle != nil {
			c.onThrottle()
		}
		c.logger.Warn("Logiwa throttled request, backing off",
			zap.String("path", path),
			zap.Int("retry", retries),
			zap.Duration("wait", wait),
		)
	}

	bounded := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.config.MaxThrottleRetries)), ctx)
	if err := backoff.RetryNotify(operation, bounded, notify); err != nil {
		if errors.Is(err, ErrThrottled) {
			return nil, fmt.Errorf("%w: %d retries: %w", ErrThrottleRetriesExhausted, retries, err)
		}
		return nil, err
	}
	return result, nil
}

// doRequest performs one rate limited HTTP attempt
func (c *Client) doRequest(ctx context.Context, method, endpoint, contentType string, cred shipment.Credential, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("logiwa: rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("logiwa: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if !cred.IsZero() {
		req.Header.Set("Authorization", cred.AuthorizationHeader())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("logiwa: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}
	return body, nil
}

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credential obtains a bearer token with the password grant
func (c *Client) Credential(ctx context.Context) (shipment.Credential, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.config.Username)
	form.Set("password", c.config.Password)

	raw, err := c.withThrottleRetry(ctx, c.config.TokenPath, func() ([]byte, error) {
		return c.doRequest(ctx, http.MethodPost, c.config.url(c.config.TokenPath),
			"application/x-www-form-urlencoded", shipment.Credential{}, []byte(form.Encode()))
	})
	if err != nil {
		return shipment.Credential{}, fmt.Errorf("%w: %w", shipment.ErrCredentialUnavailable, err)
	}

	var token TokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return shipment.Credential{}, fmt.Errorf("%w: %w", shipment.ErrCredentialUnavailable, err)
	}
	if token.AccessToken == "" {
		reason := token.ErrorDescription
		if reason == "" {
			reason = token.Error
		}
		return shipment.Credential{}, fmt.Errorf("%w: no access token: %s", shipment.ErrCredentialUnavailable, reason)
	}

	cred := shipment.Credential{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	}
	if token.ExpiresIn > 0 {
		cred.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	return cred, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
