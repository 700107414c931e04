package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://jsonplaceholder.typicode.com/users"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryDelay = 2 * time.Second

	contentType = "application/json; charset=UTF-8"
)

// Client talks to the contact service over plain JSON request/response calls.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *zap.Logger
}

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if !strings.HasPrefix(config.BaseURL, "http://") && !strings.HasPrefix(config.BaseURL, "https://") {
		return nil, fmt.Errorf("unsupported contact service url: %s", config.BaseURL)
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryCount < 0 {
		config.RetryCount = 0
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger.Named("remote"),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// ListContacts fetches the full contact set. Retryable failures are repeated
// up to RetryCount extra times.
func (c *Client) ListContacts(ctx context.Context) ([]ContactRecord, error) {
	var lastErr *Error

	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying contact fetch", zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ClassifyError(ctx.Err())
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
		}

		records, err := c.doList(ctx)
		if err == nil {
			c.logger.Debug("fetched contacts", zap.Int("count", len(records)))
			return records, nil
		}

		lastErr = ClassifyError(err)
		if !lastErr.IsRetryable() {
			break
		}
	}

	c.logger.Warn("contact fetch failed", zap.Error(lastErr))
	return nil, lastErr
}

func (c *Client) doList(ctx context.Context) ([]ContactRecord, error) {
	resp, err := c.do(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError("failed to fetch contacts", resp.StatusCode)
	}

	var records []ContactRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, NewDecodeError("failed to fetch contacts", err)
	}
	return records, nil
}

// ReplaceContact sends the full record with PUT. There is no retry.
func (c *Client) ReplaceContact(ctx context.Context, record ContactRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return NewError(ErrRequest, "failed to encode contact", err)
	}

	resp, err := c.do(ctx, http.MethodPut, c.recordURL(record.ID), body)
	if err != nil {
		c.logger.Warn("contact replace failed", zap.Int("id", record.ID), zap.Error(err))
		return ClassifyError(err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("contact replace rejected", zap.Int("id", record.ID), zap.Int("status", resp.StatusCode))
		return NewStatusError("failed to update contact", resp.StatusCode)
	}

	c.logger.Debug("contact replaced", zap.Int("id", record.ID))
	return nil
}

// DeleteContact removes a record by id. There is no retry.
func (c *Client) DeleteContact(ctx context.Context, id int) error {
	resp, err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil)
	if err != nil {
		c.logger.Warn("contact delete failed", zap.Int("id", id), zap.Error(err))
		return ClassifyError(err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("contact delete rejected", zap.Int("id", id), zap.Int("status", resp.StatusCode))
		return NewStatusError("failed to delete contact", resp.StatusCode)
	}

	c.logger.Debug("contact deleted", zap.Int("id", id))
	return nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) recordURL(id int) string {
	return c.config.BaseURL + "/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, NewError(ErrRequest, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		classified := ClassifyError(err)
		// the client's own deadline fired, not the caller's
		if classified.Type == ErrTimeout && ctx.Err() == nil {
			timeoutErr := NewTimeoutError(method+" "+url, c.config.Timeout)
			timeoutErr.Cause = err
			return nil, timeoutErr
		}
		return nil, classified
	}
	return resp, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
