// Package gateway implements the remote gateway: the HTTP client executing
// board API and auth operations and returning raw transfer objects. It owns
// no domain state; DTO to domain conversion happens in the repository layer.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	apperrors "ideaboard-core/pkg/errors"
	"ideaboard-core/pkg/observability"
)

// TokenSource supplies the current access token for request authorization.
// It reports false when no session is active.
type TokenSource func() (token string, ok bool)

// Options configures the gateway client.
type Options struct {
	BaseURL     string
	TokenURL    string
	ClientID    string
	RedirectURI string
	Timeout     time.Duration
	Tokens      TokenSource
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Metrics     *observability.Collector
}

// Client executes HTTP operations against the board backend.
type Client struct {
	baseURL     string
	tokenURL    string
	clientID    string
	redirectURI string
	tokens      TokenSource
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	logger      *zap.Logger
	metrics     *observability.Collector
}

// NewClient creates a gateway client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(opts.BaseURL, "/"),
		tokenURL:    opts.TokenURL,
		clientID:    opts.ClientID,
		redirectURI: opts.RedirectURI,
		tokens:      opts.Tokens,
		httpClient:  httpClient,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "board-gateway",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Only trip if we have enough requests to make a decision
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			opts.Logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// 4xx responses are the caller's problem, not backend health.
			return !apperrors.IsType(err, apperrors.ErrorTypeNetwork) &&
				!apperrors.IsType(err, apperrors.ErrorTypeServer)
		},
	})

	return c, nil
}

// doJSON executes one JSON round-trip against the board API and decodes the
// response into out (which may be nil for empty responses).
func (c *Client) doJSON(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body").WithCause(err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.execute(operation, req, out)
}

// doForm executes one form-encoded round-trip, used by the OAuth token
// endpoint which speaks application/x-www-form-urlencoded.
func (c *Client) doForm(ctx context.Context, operation, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.execute(operation, req, out)
}

// execute runs the request through the circuit breaker and maps the outcome.
func (c *Client) execute(operation string, req *http.Request, out any) error {
	start := time.Now()

	_, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.NewNetworkError(
				fmt.Sprintf("request to %s failed", operation), err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, apperrors.NewNetworkError(
				fmt.Sprintf("failed to read %s response", operation), err)
		}

		if resp.StatusCode >= 400 {
			return nil, statusToError(resp.StatusCode, data)
		}

		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return nil, apperrors.NewInternalError(
					fmt.Sprintf("failed to decode %s response", operation)).WithCause(err)
			}
		}
		return nil, nil
	})

	status := "success"
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			err = apperrors.NewNetworkError("gateway circuit open", err)
		}
		status = "failure"
	}
	c.metrics.ObserveGatewayRequest(operation, status, time.Since(start))

	c.logger.Debug("Gateway request completed",
		zap.String("operation", operation),
		zap.String("method", req.Method),
		zap.String("status", status),
		zap.Duration("duration", time.Since(start)),
	)

	return err
}

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusToError maps an HTTP failure status onto the closed error taxonomy.
func statusToError(status int, body []byte) error {
	message := ""
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		if er.Message != "" {
			message = er.Message
		} else {
			message = er.Error
		}
	}
	if message == "" {
		message = "request failed with status " + strconv.Itoa(status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.NewUnauthorizedError(message)
	case status == http.StatusNotFound:
		return &apperrors.AppError{Type: apperrors.ErrorTypeNotFound, Message: message}
	case status == http.StatusConflict:
		return apperrors.NewConflictError(message)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.NewValidationError(message)
	case status >= 500:
		return apperrors.NewServerError(message)
	default:
		return apperrors.NewInternalError(message)
	}
}
