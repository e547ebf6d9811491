package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"homework-bot/internal/domain"
	"homework-bot/internal/infra/metrics"
)

const maxErrorBody = 512

// Client ходит в API статусов домашних работ.
type Client struct {
	endpoint   *url.URL
	token      string
	httpClient *http.Client
	log        zerolog.Logger
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

// WithClock подменяет источник текущего времени для from_date.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func New(endpoint, token string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	client := &Client{
		endpoint:   parsed,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetAPIAnswer запрашивает изменения статусов начиная с cursor. Нулевой cursor заменяется текущим временем.
func (c *Client) GetAPIAnswer(ctx context.Context, cursor int64) (domain.APIResponse, error) {
	if cursor == 0 {
		cursor = c.now().Unix()
	}

	start := time.Now()
	resp, err := c.fetch(ctx, cursor)
	metrics.ObserveNetworkRequest("practicum", "homework_statuses", start, err)
	if err != nil {
		c.log.Error().Err(err).Int64("from_date", cursor).Msg("Не удалось получить ответ API")
		return domain.APIResponse{}, err
	}
	c.log.Debug().Int64("from_date", cursor).Dur("took", time.Since(start)).Msg("Ответ API получен")
	return resp, nil
}

func (c *Client) fetch(ctx context.Context, cursor int64) (domain.APIResponse, error) {
	req, err := c.newRequest(ctx, cursor)
	if err != nil {
		return domain.APIResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return domain.APIResponse{}, fmt.Errorf("%w: %w: %w", domain.ErrAPIAccess, domain.ErrTimeout, err)
		}
		return domain.APIResponse{}, fmt.Errorf("%w: %w", domain.ErrAPIAccess, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.APIResponse{}, &domain.APIStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return domain.APIResponse{}, fmt.Errorf("%w: %w: %w", domain.ErrAPIAccess, domain.ErrTimeout, err)
		}
		return domain.APIResponse{}, fmt.Errorf("%w: чтение ответа: %w", domain.ErrAPIAccess, err)
	}
	var out domain.APIResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.APIResponse{}, fmt.Errorf("%w: ответ не является JSON-объектом: %w", domain.ErrSchema, err)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, cursor int64) (*http.Request, error) {
	resolved := *c.endpoint
	query := resolved.Query()
	query.Set("from_date", strconv.FormatInt(cursor, 10))
	resolved.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ domain.HomeworkAPI = (*Client)(nil)
