package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds every identity API call. Calls are never retried.
const DefaultTimeout = 10 * time.Second

// UserIDHeader carries the signed-in user on calls made on their behalf.
const UserIDHeader = "X-User-ID"

// Client talks JSON to the identity API, authenticating with a shared bearer secret.
type Client struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

type Option func(*Client)

// WithTimeout sets the overall timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL, secret string, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[backend.New] base URL is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secret:     secret,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// outboundRequest models a single call to the identity API.
type outboundRequest struct {
	method string
	path   string
	// userID is sent as X-User-ID when set
	userID  string
	reqBody any
	// respObj receives the decoded JSON body of a successful response
	respObj any
}

func (c *Client) executeRequest(ctx context.Context, req outboundRequest) error {
	var body io.Reader
	if req.reqBody != nil {
		b, err := json.Marshal(req.reqBody)
		if err != nil {
			return errors.Wrap(err, "error marshaling request body")
		}
		body = bytes.NewReader(b)
	}

	r, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return errors.Wrapf(err, "error creating request %s %s", req.method, req.path)
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secret))
	if req.userID != "" {
		r.Header.Set(UserIDHeader, req.userID)
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return errors.Wrapf(err, "error invoking %s %s", req.method, req.path)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "error reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBytes)
	}

	if req.respObj == nil || len(bytes.TrimSpace(respBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBytes, req.respObj); err != nil {
		return errors.Wrap(err, "error unmarshaling response body")
	}
	return nil
}
