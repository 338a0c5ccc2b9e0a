package wiki

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

	"github.com/emrgen/wiki/internal/api"
)

// Client talks to a wiki server with basic credentials.
type Client interface {
	ListArticles(ctx context.Context, page int) (*api.Page[api.ArticleSummaryView], error)
	GetArticle(ctx context.Context, id uint) (*api.ArticleView, error)
	CreateArticle(ctx context.Context, in CreateArticleInput) (*api.ArticleView, error)
	UpdateArticle(ctx context.Context, id uint, in UpdateArticleInput) (*api.ArticleView, error)
	ArticleHTML(ctx context.Context, id uint) (string, error)
	ListURLPaths(ctx context.Context) ([]api.URLPathView, error)
}

// CreateArticleInput creates an article. A nil Parent creates the root.
type CreateArticleInput struct {
	Parent  *uint  `json:"parent"`
	Title   string `json:"title"`
	Slug    string `json:"slug,omitempty"`
	Content string `json:"content"`
	Summary string `json:"summary,omitempty"`
}

// UpdateArticleInput adds a revision with a new title and content.
type UpdateArticleInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	UserMessage string `json:"user_message,omitempty"`
}

// Error is a non-2xx response from the server.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wiki: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(e.Body))
}

type client struct {
	base     *url.URL
	username string
	password string
	http     *http.Client
}

func NewClient(baseURL, username, password string) (Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("wiki: invalid server url %q", baseURL)
	}

	return &client{
		base:     base,
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *client) ListArticles(ctx context.Context, page int) (*api.Page[api.ArticleSummaryView], error) {
	path := "/api/articles/"
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
	}

	var res api.Page[api.ArticleSummaryView]
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) GetArticle(ctx context.Context, id uint) (*api.ArticleView, error) {
	var res api.ArticleView
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d/", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) CreateArticle(ctx context.Context, in CreateArticleInput) (*api.ArticleView, error) {
	var res api.ArticleView
	if err := c.do(ctx, http.MethodPost, "/api/articles/", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) UpdateArticle(ctx context.Context, id uint, in UpdateArticleInput) (*api.ArticleView, error) {
	var res api.ArticleView
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/articles/%d/", id), in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) ArticleHTML(ctx context.Context, id uint) (string, error) {
	var res api.HTMLView
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/articles/%d/html/", id), nil, &res); err != nil {
		return "", err
	}
	return res.HTML, nil
}

func (c *client) ListURLPaths(ctx context.Context) ([]api.URLPathView, error) {
	var res []api.URLPathView
	if err := c.do(ctx, http.MethodGet, "/api/urls/", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &Error{StatusCode: res.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
