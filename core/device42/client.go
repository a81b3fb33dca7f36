package device42

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inventory-sync/core/utils"
)

const (
	queryPath = "services/data/v1.0/query/"
	pingPath  = "api/1.0/buildings/"
	maxPages  = 10000
)

// ErrStatus is returned for non-2xx responses.
var ErrStatus = errors.New("unexpected device42 response status")

// Client talks to one Device42 appliance.
type Client struct {
	base     *url.URL
	username string
	password string
	pageSize int
	http     *http.Client
}

// NewClient validates the configuration and builds an HTTP client with strict timeouts.
func NewClient(cfg Config) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, fmt.Errorf("device42 host is required")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	base, err := url.Parse(strings.TrimSuffix(host, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid device42 host %q: %w", cfg.Host, err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}, //nolint:gosec
	}

	return &Client{
		base:     base,
		username: cfg.Username,
		password: cfg.Password,
		pageSize: pageSize,
		http:     &http.Client{Transport: transport, Timeout: timeoutDuration},
	}, nil
}

// URL resolves an API path against the host.
func (c *Client) URL(path string) string {
	ref := &url.URL{Path: strings.TrimPrefix(path, "/")}
	if i := strings.Index(path, "?"); i >= 0 {
		ref = &url.URL{Path: strings.TrimPrefix(path[:i], "/"), RawQuery: path[i+1:]}
	}
	return c.base.ResolveReference(ref).String()
}

// List fetches every page of a REST listing and returns the records under key.
func (c *Client) List(ctx context.Context, path, key string) ([]utils.Record, error) {
	params := url.Values{}
	var out []utils.Record

	for page := 0; page < maxPages; page++ {
		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}

		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		out = append(out, utils.Record(resp).Records(key)...)

		total := utils.ToInt(resp["total_count"])
		offset := utils.ToInt(resp["offset"])
		limit := utils.ToInt(resp["limit"])
		if total == 0 || limit == 0 || offset+limit >= total {
			return out, nil
		}
		params.Set("offset", strconv.Itoa(offset+limit))
	}
	return out, fmt.Errorf("too many pages for %s, possible paging loop", path)
}

// Query runs a DOQL statement.
func (c *Client) Query(ctx context.Context, doql string) ([]utils.Record, error) {
	params := url.Values{}
	params.Set("query", doql)
	params.Set("output_type", "json")

	body, err := c.get(ctx, queryPath, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode doql response: %w", err)
	}
	out := make([]utils.Record, len(rows))
	for i, row := range rows {
		out[i] = utils.Record(row)
	}
	return out, nil
}

// Ping verifies the appliance is reachable and the credentials are accepted.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("_max_results", "1")
	_, err := c.do(ctx, pingPath, params)
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("_paging", "1")
	params.Set("_return_as_object", "1")
	params.Set("_max_results", strconv.Itoa(c.pageSize))
	return c.do(ctx, path, params)
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	target, err := url.Parse(c.URL(path))
	if err != nil {
		return nil, fmt.Errorf("invalid device42 path %q: %w", path, err)
	}
	q := target.Query()
	for k, vs := range params {
		q[k] = vs
	}
	target.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach device42: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read device42 response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, path, resp.StatusCode)
	}
	return body, nil
}
