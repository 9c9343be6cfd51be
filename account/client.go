// Package account talks to the application's Account Service, which owns
// account creation, password hashing and validation.
package account

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

	"github.com/kasuganosora/coffeemon-seed/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnavailable is returned by Health when the service is unreachable or
// not healthy.
var ErrUnavailable = errors.New("account service unavailable")

// TraceHeader carries the seed run id on every request so the service's
// request log can be matched to a run.
const TraceHeader = "X-Trace-ID"

type traceKey struct{}

// WithTraceID returns a context whose requests carry id in TraceHeader.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func setTrace(req *http.Request) {
	if id, ok := req.Context().Value(traceKey{}).(string); ok && id != "" {
		req.Header.Set(TraceHeader, id)
	}
}

// RejectedError is returned by CreateUser for any non-2xx answer. The
// service uses it for duplicates as well as validation failures.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("account service rejected request: %d %s", e.Status, e.Message)
}

// Conflict reports whether the account already exists.
func (e *RejectedError) Conflict() bool { return e.Status == http.StatusConflict }

// NewUser is the body of POST /users.
type NewUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client is a small HTTP client for the Account Service.
type Client struct {
	baseURL       string
	http          *http.Client
	healthTimeout time.Duration
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// NewClient creates a Client. Requests are throttled to cfg.RateLimitRPS so
// a seed run never floods the service's password hashing.
func NewClient(cfg config.AccountServiceConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = 5 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimitRPS > 0 {
		limit = rate.Limit(cfg.RateLimitRPS)
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		healthTimeout: healthTimeout,
		limiter:       rate.NewLimiter(limit, burst),
		logger:        logger,
	}
}

// Health probes GET /health and requires a 200.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	setTrace(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, c.baseURL, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s/health returned %d", ErrUnavailable, c.baseURL, resp.StatusCode)
	}
	return nil
}

// CreateUser posts u to /users. A non-2xx answer is returned as
// *RejectedError; transport failures are returned as is.
func (c *Client) CreateUser(ctx context.Context, u NewUser) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(u)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setTrace(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("account: POST /users: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("account created",
			zap.String("email", u.Email),
			zap.Int64("id", gjson.GetBytes(raw, "id").Int()))
		return nil
	}
	return &RejectedError{Status: resp.StatusCode, Message: errorMessage(raw)}
}

// errorMessage pulls a readable message out of an error body. The service
// answers either {"message": "..."} or {"message": ["...", "..."]}.
func errorMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return strings.TrimSpace(string(raw))
	}
	msg := gjson.GetBytes(raw, "message")
	if msg.IsArray() {
		parts := make([]string, 0, len(msg.Array()))
		for _, m := range msg.Array() {
			parts = append(parts, m.String())
		}
		return strings.Join(parts, "; ")
	}
	if msg.Exists() {
		return msg.String()
	}
	if e := gjson.GetBytes(raw, "error"); e.Exists() {
		return e.String()
	}
	return strings.TrimSpace(string(raw))
}
