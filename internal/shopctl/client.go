// Package shopctl is the terminal side of the admin dashboard: a REST
// client for the admin API, saved login state, table rendering and catalog
// seeding.
package shopctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edvin/shopadmin/internal/listing"
)

type Client struct {
	BaseURL    string
	BasePath   string
	Token      string
	HTTPClient *http.Client
}

// APIError is a non-2xx reply from the admin API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func NewClient(baseURL, basePath, token string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		BasePath: "/" + strings.Trim(basePath, "/"),
		Token:    token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, c.apiURL(path, query), nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.apiURL(path, nil), body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, c.apiURL(path, nil), body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.apiURL(path, nil), body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.apiURL(path, nil), nil, nil)
}

// LoginResult is the body returned by POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	Admin struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"admin"`
}

// Login exchanges credentials for a token. The login route lives outside
// the API base path.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, c.BaseURL+"/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PostMultipart sends form fields and an optional file under "image".
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, imagePath string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if imagePath != "" {
		f, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out)
}

// Download streams a binary response, such as the product export, to w.
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path, nil), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return 0, apiError(resp.StatusCode, body)
	}
	return io.Copy(w, resp.Body)
}

func (c *Client) apiURL(path string, query url.Values) string {
	u := c.BaseURL + strings.TrimRight(c.BasePath, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) *APIError {
	var e struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		msg = e.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// List fetches one page of a paginated endpoint.
func List[T any](ctx context.Context, c *Client, path string, query url.Values) (listing.Page[T], error) {
	var page listing.Page[T]
	if err := c.Get(ctx, path, query, &page); err != nil {
		return page, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

// FetchAll walks every page of a paginated endpoint, for views that group
// or filter the full set locally.
func FetchAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page_size", fmt.Sprint(listing.MaxPageSize))

	var all []T
	for page := 1; ; page++ {
		q.Set("page", fmt.Sprint(page))
		p, err := List[T](ctx, c, path, q)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if !p.HasNext {
			return all, nil
		}
	}
}
