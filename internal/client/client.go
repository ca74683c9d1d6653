// client реализует HTTP/JSON-клиент REST-бэкенда ридера (Remote List Client).
//
// Клиент не владеет никаким состоянием списков: он только выполняет
// типизированные запросы и нормализует ошибки. Провайдер учётных данных
// (TokenSource) инжектируется конструктором — глобального чтения токена нет.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-reader-client/internal/models"
	logctx "github.com/pribylovaa/go-reader-client/pkg/log"
)

const defaultTimeout = 15 * time.Second

// Client — клиент REST API бэкенда.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	tokens    TokenSource
	userAgent string
	timeout   time.Duration
}

// Option — настройка клиента при создании.
type Option func(*Client)

// WithHTTPClient подменяет транспортный *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent задаёт User-Agent исходящих запросов.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout задаёт дефолтный таймаут вызова; применяется только если
// у контекста вызывающего ещё нет дедлайна. d <= 0 отключает таймаут.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New создаёт клиент для бэкенда по базовому URL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	const op = "client.New"

	if baseURL == "" {
		return nil, fmt.Errorf("%s: empty base url", op)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse base url: %w", op, err)
	}

	if tokens == nil {
		tokens = StaticTokenSource("")
	}

	c := &Client{
		http:      &http.Client{},
		baseURL:   u,
		tokens:    tokens,
		userAgent: "go-reader-client",
		timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListCollections возвращает коллекции текущего пользователя.
func (c *Client) ListCollections(ctx context.Context) ([]models.Collection, error) {
	const op = "client.ListCollections"

	var out []models.Collection
	if err := c.do(ctx, op, http.MethodGet, "/collections", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ListArticles возвращает страницу статей коллекции.
//
// Параметры opts транслируются в limit/offset/unread_only/saved_only
// query-параметры; нулевые значения флагов не передаются.
func (c *Client) ListArticles(ctx context.Context, collectionID int64, opts models.ListOptions) (*models.Page, error) {
	const op = "client.ListArticles"

	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.UnreadOnly {
		q.Set("unread_only", "true")
	}
	if opts.SavedOnly {
		q.Set("saved_only", "true")
	}

	path := fmt.Sprintf("/collections/%d/articles", collectionID)

	var page models.Page
	if err := c.do(ctx, op, http.MethodGet, path, q, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// MarkRead отмечает статью прочитанной. Идемпотентно на стороне сервера.
func (c *Client) MarkRead(ctx context.Context, articleID int64) (*models.ArticleState, error) {
	return c.mutateState(ctx, "client.MarkRead", http.MethodPut, articleID, "read")
}

// MarkUnread отмечает статью непрочитанной.
func (c *Client) MarkUnread(ctx context.Context, articleID int64) (*models.ArticleState, error) {
	return c.mutateState(ctx, "client.MarkUnread", http.MethodDelete, articleID, "read")
}

// SaveArticle сохраняет статью.
func (c *Client) SaveArticle(ctx context.Context, articleID int64) (*models.ArticleState, error) {
	return c.mutateState(ctx, "client.SaveArticle", http.MethodPut, articleID, "saved")
}

// UnsaveArticle убирает статью из сохранённых.
func (c *Client) UnsaveArticle(ctx context.Context, articleID int64) (*models.ArticleState, error) {
	return c.mutateState(ctx, "client.UnsaveArticle", http.MethodDelete, articleID, "saved")
}

// mutateState — общий путь четырёх мутационных вызовов:
// PUT/DELETE /articles/{id}/{read|saved} -> ArticleState.
func (c *Client) mutateState(ctx context.Context, op, method string, articleID int64, axis string) (*models.ArticleState, error) {
	path := fmt.Sprintf("/articles/%d/%s", articleID, axis)

	var state models.ArticleState
	if err := c.do(ctx, op, method, path, nil, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

// do выполняет один запрос к бэкенду и декодирует ответ в out.
//
// Контракт:
//  1. если у ctx нет дедлайна и c.timeout > 0 — навешиваем таймаут;
//  2. токен берём у TokenSource на каждый вызов (он может ротироваться);
//  3. не-2xx ответ превращается в *APIError (см. errors.go).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, out any) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%s: token: %w", op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logctx.From(ctx).Warn("request_failed",
			slog.String("op", op),
			slog.String("request_id", reqID),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeAPIError(resp)
		logctx.From(ctx).Warn("request_rejected",
			slog.String("op", op),
			slog.String("request_id", reqID),
			slog.Int("status", apiErr.StatusCode),
			slog.String("code", apiErr.Code),
		)

		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	return nil
}
