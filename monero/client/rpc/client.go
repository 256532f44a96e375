package rpc

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
	fasthex "github.com/tmthrgd/go-hex"
)

const (
	// EndpointJSONRPC is the common endpoint used for all the RPC calls that make use of
	// epee's JSONRPC invocation format for requests and responses.
	EndpointJSONRPC = "/json_rpc"

	versionJSONRPC = "2.0"
)

const logPrefix = "RPC"

// Client is a wrapper over a plain HTTP client issuing JSON-RPC calls to a monero-wallet-rpc instance.
// Calls are serialized, the wallet daemon processes one request at a time anyway.
type Client struct {
	http *http.Client

	// address of the instance serving the RPC endpoints
	address *url.URL

	username string
	password string

	metrics *Metrics

	lock           sync.Mutex
	digest         *digest
	requestCounter uint32
}

type ClientOptions struct {
	HTTPClient *http.Client
	Username   string
	Password   string
	Metrics    *Metrics
}

type ClientOption func(o *ClientOptions)

// WithHTTPClient overrides the default http client used under the hood to issue the RPC calls
func WithHTTPClient(v *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.HTTPClient = v
	}
}

// WithCredentials enables digest authentication, as configured via --rpc-login on the daemon
func WithCredentials(username, password string) ClientOption {
	return func(o *ClientOptions) {
		o.Username = username
		o.Password = password
	}
}

func WithMetrics(m *Metrics) ClientOption {
	return func(o *ClientOptions) {
		o.Metrics = m
	}
}

// NewHTTPClient returns a client with the given overall request timeout. Zero means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// NewClient instantiates a new Client that is able to communicate with monero-wallet-rpc endpoints
func NewClient(address string, opts ...ClientOption) (*Client, error) {
	options := &ClientOptions{
		HTTPClient: NewHTTPClient(0),
	}

	for _, opt := range opts {
		opt(options)
	}

	parsedAddress, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("url parse: %w", err)
	}

	return &Client{
		address:  parsedAddress,
		http:     options.HTTPClient,
		username: options.Username,
		password: options.Password,
		metrics:  options.Metrics,
	}, nil
}

func (c *Client) Address() string {
	return c.address.String()
}

// RequestEnvelope wraps all requests made to the RPC server
type RequestEnvelope struct {
	ID      string `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// ResponseEnvelope wraps all responses from the RPC server
type ResponseEnvelope struct {
	ID      string               `json:"id"`
	JSONRPC string               `json:"jsonrpc"`
	Result  utils.JSONRawMessage `json:"result"`
	Error   *Error               `json:"error,omitempty"`
}

// JSONRPC issues a request for a particular method under the JSONRPC endpoint with the proper
// envelope for its requests and unwrapping of results for responses. When response is not nil,
// the result object gets decoded into it.
func (c *Client) JSONRPC(ctx context.Context, method string, params, response any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveCall(method, err, time.Since(start))
		if err != nil {
			utils.Debugf(logPrefix, "%s failed after %s: %s", method, time.Since(start), err)
		} else {
			utils.Debugf(logPrefix, "%s took %s", method, time.Since(start))
		}
	}()

	body, err := utils.MarshalJSON(&RequestEnvelope{
		ID:      "0",
		JSONRPC: versionJSONRPC,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	address := *c.address
	address.Path = EndpointJSONRPC

	envelope := &ResponseEnvelope{}
	if err = c.submitRequest(ctx, address, body, envelope); err != nil {
		return err
	}

	if envelope.Error != nil && (envelope.Error.Code != 0 || envelope.Error.Message != "") {
		envelope.Error.Method = method
		return envelope.Error
	}

	if response != nil && len(envelope.Result) > 0 {
		if err = utils.UnmarshalJSON(envelope.Result, response); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, address url.URL, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new req: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) submitRequest(ctx context.Context, address url.URL, body []byte, response any) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	req, err := c.newRequest(ctx, address, body)
	if err != nil {
		return err
	}
	if err = c.authorize(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.username != "" {
		// consume challenge and retry once with fresh credentials
		d := newDigest(resp.Header.Get("WWW-Authenticate"))
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		if d == nil {
			return fmt.Errorf("non-2xx status code: %d", resp.StatusCode)
		}
		c.digest = d
		c.requestCounter = 0

		if req, err = c.newRequest(ctx, address, body); err != nil {
			return err
		}
		if err = c.authorize(req); err != nil {
			return err
		}
		if resp, err = c.http.Do(req); err != nil {
			return fmt.Errorf("do: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.digest = nil
		}
		return fmt.Errorf("non-2xx status code: %d", resp.StatusCode)
	}

	if err := utils.NewJSONDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

// authorize sets the Authorization header when a digest challenge was previously received
func (c *Client) authorize(req *http.Request) error {
	if c.digest == nil || c.username == "" {
		return nil
	}

	var nonce [8]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return fmt.Errorf("client nonce: %w", err)
	}

	c.requestCounter++
	uri := req.URL.RequestURI()
	if req.URL.Path == "" {
		uri = "/"
	}
	hdr, err := c.digest.Auth(req.Method, uri, c.username, c.password, c.requestCounter, fasthex.EncodeToString(nonce[:]))
	if err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	req.Header.Set("Authorization", hdr)
	return nil
}

// Error is a JSON-RPC error object returned by the daemon
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Method  string `json:"-"`
}

func (e *Error) Error() string {
	if e.Method != "" {
		return fmt.Sprintf("rpc error: method=%s code=%d message=%s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("rpc error: code=%d message=%s", e.Code, e.Message)
}

// IsMethodNotFound reports whether the daemon does not implement the called method
func (e *Error) IsMethodNotFound() bool {
	return e.Code == -32601 || strings.Contains(strings.ToLower(e.Message), "method not found")
}
