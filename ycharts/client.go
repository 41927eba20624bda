// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ycharts

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"sync"

	"github.com/stockparfait/logging"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default base URL of the server. It may be overwritten in tests
// before creating a new client.
var URL = "https://ycharts.com/api/v3"

// AuthHeader is the HTTP header carrying the API key.
const AuthHeader = "X-YCHARTSAUTHORIZATION"

// Client for querying the YCharts API. It is safe for concurrent use, and is
// intended to be created once and reused for all the requests.
type Client struct {
	baseURL  string
	apiKey   string // your very own secret key
	base     *http.Client
	insecure bool

	once sync.Once
	hc   *http.Client
	// newHTTP constructs the HTTP client on the first request.
	newHTTP func(c *Client) *http.Client
}

// Option configures a Client.
type Option func(c *Client)

// HTTPClient sets the base HTTP client. Its settings are copied into the
// client's own HTTP client. The default is http.DefaultClient.
func HTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// InsecureSkipVerify disables TLS certificate validation. This is the legacy
// trust policy of earlier YCharts clients, and must be requested explicitly.
// It has no effect when the HTTP client set by HTTPClient has a custom
// transport.
func InsecureSkipVerify() Option {
	return func(c *Client) { c.insecure = true }
}

// NewClient creates a new client. An empty key is not rejected here: all the
// requests made with such a client fail with ConfigurationError instead.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: URL,
		apiKey:  apiKey,
		base:    http.DefaultClient,
		newHTTP: buildHTTPClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client based on the API key and injects it into the
// context.
func UseClient(ctx context.Context, apiKey string, opts ...Option) context.Context {
	return context.WithValue(ctx, clientContextKey, NewClient(apiKey, opts...))
}

// authTransport adds the API key header to every request.
type authTransport struct {
	key  string
	base http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the original request.
	r := req.Clone(req.Context())
	r.Header.Set(AuthHeader, t.key)
	return t.base.RoundTrip(r)
}

// buildHTTPClient derives the client's own HTTP client from the base one, with
// the key header attached.
func buildHTTPClient(c *Client) *http.Client {
	hc := *c.base
	rt := hc.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if c.insecure {
		if t, ok := rt.(*http.Transport); ok {
			t = t.Clone()
			if t.TLSClientConfig == nil {
				t.TLSClientConfig = &tls.Config{}
			}
			t.TLSClientConfig.InsecureSkipVerify = true
			rt = t
		}
	}
	hc.Transport = &authTransport{key: c.apiKey, base: rt}
	return &hc
}

// httpClient returns the HTTP client, creating it on the first call.
func (c *Client) httpClient() (*http.Client, error) {
	if c.apiKey == "" {
		return nil, newError(ConfigurationError, "API key has not been provided")
	}
	c.once.Do(func() { c.hc = c.newHTTP(c) })
	return c.hc, nil
}

// Get executes the request and returns the top-level JSON object of the
// response. All errors are of type *Error.
func (c *Client) Get(ctx context.Context, r *Request) (map[string]interface{}, error) {
	hc, err := c.httpClient()
	if err != nil {
		return nil, err
	}
	uri := c.baseURL + "/" + r.Path()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, unavailable(err)
	}
	logging.Debugf(ctx, "YCharts: GET %s", uri)
	resp, err := hc.Do(req)
	if err != nil {
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(err)
	}
	res, err := classify(resp.StatusCode, body)
	if err != nil {
		logging.Warningf(ctx, "YCharts: GET %s: %s", r.Path(), err.Error())
		return nil, err
	}
	return res, nil
}

// execute validates the client and executes the request built by one of the
// facades.
func execute(ctx context.Context, c *Client, r *Request, err error) (map[string]interface{}, error) {
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, newError(ConfigurationError, "no client in context")
	}
	return c.Get(ctx, r)
}

// Companies returns the facade for the companies collection.
func (c *Client) Companies() CompanyClient {
	return CompanyClient{client: c}
}

// Indicators returns the facade for the indicators collection.
func (c *Client) Indicators() IndicatorClient {
	return IndicatorClient{client: c}
}

// MutualFunds returns the facade for the mutual funds collection.
func (c *Client) MutualFunds() MutualFundClient {
	return MutualFundClient{client: c}
}
