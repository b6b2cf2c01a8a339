// internal/common/http/client.go
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the outbound HTTP client shared by workers that call external
// government data APIs (SAM.gov, USAspending). Connections are pooled per
// host since sync jobs page through the same endpoint repeatedly.
type Client struct {
	inner *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		inner: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.inner.Do(req)
}

// DoJSON executes the request and decodes a 2xx response body into out.
// Non-2xx responses are returned as errors with the status code.
func (c *Client) DoJSON(req *http.Request, out interface{}) error {
	resp, err := c.inner.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s returned status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
