// Package gateway implements the SendCloud SMS wire protocol: a
// form-encoded POST of the signed payload and a JSON reply.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// DefaultSendURL is the gateway's standard send endpoint.
const DefaultSendURL = "https://www.sendcloud.net/smsapi/send"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Transport posts a form-encoded payload and returns the raw response
// body. Implementations must honor ctx cancellation and deadlines.
type Transport interface {
	PostForm(ctx context.Context, endpoint string, data map[string]string) ([]byte, error)
}

// Client is the default HTTP transport.
type Client struct {
	httpClient *http.Client
}

// NewClient creates the default transport. A nil httpClient falls back to
// a dedicated client bounded by timeout (zero means no timeout).
func NewClient(httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{httpClient: httpClient}
}

// PostForm sends data as an application/x-www-form-urlencoded POST.
// Any response outside the 2xx class is an error.
func (c *Client) PostForm(ctx context.Context, endpoint string, data map[string]string) ([]byte, error) {
	form := url.Values{}
	for k, v := range data {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("gateway: status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Response is the gateway's JSON reply. StatusCode and Message are nil
// when the gateway omits them.
type Response struct {
	Result     bool           `json:"result"`
	StatusCode *int           `json:"statusCode"`
	Message    *string        `json:"message"`
	Info       map[string]any `json:"info"`
}

// ParseResponse decodes a raw reply body.
func ParseResponse(body []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("gateway: parse response: %w", err)
	}
	return &r, nil
}
