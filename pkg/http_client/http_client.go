package http_client

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

type HTTPClient struct {
	Client *http.Client
}

func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: &http.Client{
		Timeout: 0,
	}}
}

// NewHTTPClientWithCookies returns a client that attaches the cookie header
// read from cookieFile to every request. YouTube throttles anonymous
// sessions aggressively; an exported browser cookie keeps the session warm.
func NewHTTPClientWithCookies(cookieFile string) (*HTTPClient, error) {
	data, err := os.ReadFile(cookieFile)
	if err != nil {
		return nil, err
	}
	cookie := strings.TrimSpace(string(data))
	return &HTTPClient{Client: &http.Client{
		Timeout:   0,
		Transport: &cookieTransport{base: http.DefaultTransport, cookie: cookie},
	}}, nil
}

type cookieTransport struct {
	base   http.RoundTripper
	cookie string
}

// RoundTrip attaches the configured cookie on a clone of the request;
// the RoundTripper contract forbids mutating the caller's request.
func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.cookie == "" || req.Header.Get("Cookie") != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Cookie", t.cookie)
	return t.base.RoundTrip(clone)
}

func (h *HTTPClient) CreateRequest(method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func (h *HTTPClient) DoRequest(req *http.Request) ([]byte, int, error) {
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, 500, err
	}
	defer resp.Body.Close()
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 500, err
	}
	return dat, resp.StatusCode, nil
}

// Get fetches url and returns the response body, failing on any
// non-200 status.
func (h *HTTPClient) Get(url string) ([]byte, error) {
	req, err := h.CreateRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	body, status, err := h.DoRequest(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", status, url)
	}
	return body, nil
}
