package templatestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"resume-studio/internal/domain"
	"resume-studio/internal/metrics"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// envelope is the response shape of the template API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client fetches templates from a remote template API.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

type ClientOptions struct {
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

func NewClient(baseURL string, opts ClientOptions, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 200 * time.Millisecond
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4*opts.RetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{http: rc, logger: logger}
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Template, error) {
	var tpl domain.Template
	if err := c.fetch(ctx, "/api/templates/"+url.PathEscape(id), &tpl); err != nil {
		c.logger.Warn("template fetch failed", zap.String("template", id), zap.Error(err))
		return nil, fmt.Errorf("fetch template %s: %w", id, err)
	}
	if tpl.ID == "" {
		tpl.ID = id
	}
	return &tpl, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Template, error) {
	var list []domain.Template
	if err := c.fetch(ctx, "/api/templates", &list); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return list, nil
}

func (c *Client) fetch(ctx context.Context, path string, into interface{}) error {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&env).
		SetError(&env).
		Get(path)
	if err != nil {
		metrics.TemplateFetches.WithLabelValues("remote", "error").Inc()
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		metrics.TemplateFetches.WithLabelValues("remote", "miss").Inc()
		return ErrTemplateNotFound
	}
	if resp.IsError() || !env.Success {
		metrics.TemplateFetches.WithLabelValues("remote", "error").Inc()
		msg := env.Message
		if msg == "" {
			msg = resp.Status()
		}
		return fmt.Errorf("template api: %s", msg)
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		metrics.TemplateFetches.WithLabelValues("remote", "error").Inc()
		return fmt.Errorf("decode template payload: %w", err)
	}
	metrics.TemplateFetches.WithLabelValues("remote", "ok").Inc()
	return nil
}
