// Package client is a thin HTTP wrapper over the pizza order API. It issues
// requests to the fixed endpoint set and attaches the session bearer token,
// read at send time, whenever one is present.
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// TokenSource supplies the current session token. An empty string means the
// caller is anonymous and no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// AnonymousTokens is a TokenSource for clients that never authenticate.
type AnonymousTokens struct{}

func (AnonymousTokens) Token() string { return "" }

type Client struct {
	http   *resty.Client
	tokens TokenSource
	logger logger.Logger
}

const startTimeKey = "startTime"

func New(cfg config.APIConfig, tokens TokenSource, log logger.Logger) *Client {
	if tokens == nil {
		tokens = AnonymousTokens{}
	}

	c := &Client{
		tokens: tokens,
		logger: log.WithFields(map[string]interface{}{"component": "api-client"}),
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-Id", uuid.NewString())
			if token := c.tokens.Token(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			endpoint := resp.Request.Method + " " + resp.Request.RawRequest.URL.Path
			metrics.APIRequests.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode())).Inc()
			metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(resp.Time().Seconds())
			return nil
		})

	return c
}

func (c *Client) request() *resty.Request {
	return c.http.R()
}

// serverMessage pulls the `{message}` body out of an error response so it can
// be surfaced verbatim.
func serverMessage(resp *resty.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return ""
	}
	return body.Message
}

// apiError maps a non-2xx response to the standard taxonomy. Authorization
// rejections are distinguished so dashboards can report them; everything else
// keeps the server's message.
func apiError(endpoint string, resp *resty.Response) error {
	msg := serverMessage(resp)
	status := resp.StatusCode()

	if status == 401 || status == 403 {
		return errors.NewAuthorizationDeniedError(msg, status)
	}

	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &errors.StandardError{
		Code:      errors.ErrCodeAPIRequestFailed,
		Message:   msg,
		Details:   fmt.Sprintf("endpoint: %s", endpoint),
		Status:    status,
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

func transportError(endpoint string, err error) error {
	return errors.NewAPIRequestFailedError(endpoint, err)
}

func decodeError(endpoint string, err error) error {
	return errors.NewAPIDecodeFailedError(endpoint, err)
}
