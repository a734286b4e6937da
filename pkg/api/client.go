package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response body is read for messages.
const maxErrorBody = 1 << 20 // 1 MB

// TokenProvider returns the current bearer token, or "" when anonymous.
// It is consulted on every request so a token change between calls is
// observed immediately.
type TokenProvider func() string

// Attachment is a file carried by a mutation. Its presence switches the
// request body from JSON to multipart form data.
type Attachment struct {
	Field string // form field name, e.g. "profileImage"
	Name  string // file name sent to the backend
	Data  []byte
}

// Client is the Encore backend API client.
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
}

// New creates an API client against the given base origin. tokens may be nil
// for a purely anonymous client.
func New(baseURL string, timeout time.Duration, tokens TokenProvider) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ImageURL rewrites a backend-relative image path to an absolute URL.
// Absolute inputs pass through untouched.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Page carries pagination parameters passed through to the backend verbatim.
type Page struct {
	Index     int
	Size      int
	Sort      string
	Direction string // "asc" or "desc"
}

// query encodes the page as backend query parameters.
func (p Page) query() url.Values {
	params := url.Values{}
	params.Set("page", strconv.Itoa(p.Index))
	params.Set("size", strconv.Itoa(p.Size))
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}
	if p.Direction != "" {
		params.Set("direction", p.Direction)
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// postMultipart sends fields plus an optional file as multipart form data.
// Call sites select this path whenever the payload carries an attachment.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, att *Attachment, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if att != nil {
		fw, err := w.CreateFormFile(att.Field, att.Name)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := fw.Write(att.Data); err != nil {
			return fmt.Errorf("write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req, out)
}

// send attaches the bearer token read fresh from the provider, executes the
// request, and unwraps the envelope. Non-2xx responses become *Error; no
// retry and no central status interpretation happen here.
func (c *Client) send(req *http.Request, out any) error {
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var env envelope
		if json.Unmarshal(respBody, &env) == nil && env.ResMessage != "" {
			return &Error{Status: resp.StatusCode, Code: env.ResCode, Message: env.ResMessage}
		}
		return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return decodeEnvelope(resp.StatusCode, respBody, out)
}
