package lavalink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RestClient talks to a node's REST API. The base URL and credential are
// fixed at construction; timeout and user agent are read from the node's
// shared configuration on every call. A RestClient is safe for concurrent
// use: it holds no mutable state and every call is an independent exchange.
type RestClient struct {
	node       *Node
	baseURL    string
	auth       string
	httpClient *http.Client

	verbose bool
	logFunc func(format string, args ...interface{})
}

// NewRestClient creates a REST client for the given node.
func NewRestClient(node *Node) *RestClient {
	scheme := "http"
	if node.options.Secure {
		scheme = "https"
	}
	return &RestClient{
		node:    node,
		baseURL: scheme + "://" + node.options.URL,
		auth:    node.options.Auth,
		// Timeouts are applied per call from the shared config, not here.
		httpClient: &http.Client{},
	}
}

// SetVerbose enables verbose logging.
func (rc *RestClient) SetVerbose(verbose bool, logFunc func(format string, args ...interface{})) {
	rc.verbose = verbose
	rc.logFunc = logFunc
}

func (rc *RestClient) log(format string, args ...interface{}) {
	if rc.verbose && rc.logFunc != nil {
		rc.logFunc(format, args...)
	}
}

// Resolve loads tracks for the given identifier: a source URL, or a search
// prefixed identifier such as "ytsearch:query". A nil response means the
// node answered with no usable body.
func (rc *RestClient) Resolve(ctx context.Context, identifier string) (*LavalinkResponse, error) {
	params := url.Values{}
	params.Set("identifier", identifier)
	return fetch[LavalinkResponse](ctx, rc, "/loadtracks", requestOptions{params: params})
}

// Decode asks the node to expand an encoded track token into its metadata.
func (rc *RestClient) Decode(ctx context.Context, track string) (*Track, error) {
	params := url.Values{}
	params.Set("track", track)
	return fetch[Track](ctx, rc, "/decodetrack", requestOptions{params: params})
}

// RoutePlannerStatus reports the node's IP rotation state. Nodes without a
// route planner configured answer with an empty status.
func (rc *RestClient) RoutePlannerStatus(ctx context.Context) (*RoutePlannerStatus, error) {
	return fetch[RoutePlannerStatus](ctx, rc, "/routeplanner/status", requestOptions{})
}

// UnmarkFailedAddress asks the route planner to clear an address's failing
// mark so it rejoins the rotation.
func (rc *RestClient) UnmarkFailedAddress(ctx context.Context, address string) error {
	_, err := fetch[struct{}](ctx, rc, "/routeplanner/free/address", requestOptions{
		method:  http.MethodPost,
		headers: map[string]string{"Content-Type": "application/json"},
		body:    map[string]string{"address": address},
	})
	return err
}

// requestOptions describe a single exchange. A zero value is a GET with no
// query, no header overrides and no body.
type requestOptions struct {
	method  string
	headers map[string]string
	params  url.Values
	body    interface{}
}

// fetch runs the request pipeline and decodes the response body into T.
// It returns (nil, nil) when the node answers without a body, or with one
// that is not JSON; both are valid empty results, not failures.
func fetch[T any](ctx context.Context, rc *RestClient, endpoint string, opts requestOptions) (*T, error) {
	method := strings.ToUpper(opts.method)
	if method == "" {
		method = http.MethodGet
	}

	target := rc.baseURL + endpoint
	if len(opts.params) > 0 {
		target += "?" + opts.params.Encode()
	}

	// Bodies ride only on GET and HEAD; every other method sends none.
	var bodyReader io.Reader
	if opts.body != nil && (method == http.MethodGet || method == http.MethodHead) {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, rc.node.config.restTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", rc.auth)
	req.Header.Set("User-Agent", rc.node.config.userAgent())
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.headers {
		req.Header.Set(k, v)
	}

	rc.log("[lavalink] %s %s", method, target)

	resp, err := rc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rc.log("[lavalink] response: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	if resp.StatusCode >= 400 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Endpoint:   endpoint,
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil || len(respBody) == 0 {
		return nil, nil
	}

	var out T
	if err := json.Unmarshal(respBody, &out); err != nil {
		rc.log("[lavalink] discarding non-JSON body: %v", err)
		return nil, nil
	}
	return &out, nil
}

// RequestError is returned when the node answers with a status >= 400.
// This layer never retries; callers own retry and failover policy.
type RequestError struct {
	StatusCode int
	Method     string
	Endpoint   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("lavalink: %s %s failed with status %d", e.Method, e.Endpoint, e.StatusCode)
}

// IsUnauthorized returns true if the node rejected the credential.
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
