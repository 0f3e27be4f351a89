package historysdk

import (
	"context"
	"log/slog"
	"os"

	"github.com/ha-config-history/cfgctl/internal/version"
	"github.com/imroc/req/v3"
)

// Client talks to the configuration history service. It is safe for concurrent use.
// No request is retried and no client side timeout is applied.
type Client struct {
	client  *req.Client
	baseURL string
}

// New creates a new Client
func New(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	baseURL := NormalizeBaseURL(config.BaseURL)

	client := req.C().
		SetBaseURL(baseURL).
		SetTimeout(0).
		SetUserAgent(userAgent).
		SetCommonHeader(HeaderClientVer, version.Version).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		OnAfterResponse(logResponse)

	if config.Debug {
		client.EnableDumpAllTo(os.Stderr)
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the normalized base url every request is sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections held by the transport
func (c *Client) Close() {
	c.client.GetTransport().CloseIdleConnections()
}

func (c *Client) request(ctx context.Context) *req.Request {
	return c.client.R().SetContext(ctx)
}

func logResponse(_ *req.Client, resp *req.Response) error {
	if resp.Response == nil {
		return nil
	}
	slog.Debug("history api",
		"method", resp.Request.Method,
		"url", resp.Request.URL.String(),
		"status", resp.StatusCode,
		"elapsed", resp.TotalTime(),
		"request_id", resp.Header.Get(HeaderRequestID),
	)
	return nil
}

func decodeJSON(resp *req.Response, v any) error {
	return jsonUnmarshal(resp.Bytes(), v)
}
