package algolia

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/errgroup"

	"github.com/five82/indexdeck/internal/config"
)

// API is the set of provider calls the console makes. *Client implements it;
// tests substitute fakes.
type API interface {
	BrowseRecords(ctx context.Context, index string) ([]Record, error)
	DeleteRecord(ctx context.Context, index, objectID string) error
	GetSettings(ctx context.Context, index string) (Settings, error)
	PutSettings(ctx context.Context, index string, settings Settings) (SettingsUpdate, error)
	FetchUsage(ctx context.Context, index string) ([]UsageRow, error)
	FetchQueryLogs(ctx context.Context, index string) ([]QueryLog, error)
	FetchAnalytics(ctx context.Context, index string) (Analytics, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Recorder observes every completed request.
type Recorder interface {
	ObserveRequest(endpoint string, status int, elapsed time.Duration, err error)
}

// Client talks to the provider's REST hosts with a fixed set of credentials.
type Client struct {
	appID    string
	writeKey string
	usageKey string

	search    *url.URL
	usage     *url.URL
	logs      *url.URL
	analytics *url.URL

	http      *http.Client
	userAgent string
	start     time.Time
	logLength int
	now       func() time.Time
	recorder  Recorder
}

const (
	defaultUserAgent = "indexdeck/0.1"
	requestTimeout   = 15 * time.Second
	maxBrowsePages   = 20
	topSearchLimit   = 5
	maxErrorBody     = 64 << 10

	dateLayout = "2006-01-02"
)

var json = sonic.ConfigStd

// DocumentJSON decodes opaque documents such as settings and raw records.
// Numbers stay json.Number so integers past float64 precision keep their
// literal text through a read, edit and write cycle.
var DocumentJSON = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseNumber:        true,
}.Froze()

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithClock sets the clock used to compute "today" for date windows.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecorder reports request outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient builds a Client from the loaded configuration.
func NewClient(cfg config.Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.AppID) == "" {
		return nil, fmt.Errorf("application id is required")
	}
	c := &Client{
		appID:     cfg.AppID,
		writeKey:  cfg.WriteAPIKey,
		usageKey:  cfg.UsageAPIKey,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		start:     cfg.Start(),
		logLength: cfg.LogLength,
		now:       time.Now,
	}
	hosts := []struct {
		name string
		raw  string
		dst  **url.URL
	}{
		{"search_host", cfg.SearchHost, &c.search},
		{"usage_host", cfg.UsageHost, &c.usage},
		{"logs_host", cfg.LogsHost, &c.logs},
		{"analytics_host", cfg.AnalyticsHost, &c.analytics},
	}
	for _, h := range hosts {
		u, err := parseBaseURL(h.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", h.name, err)
		}
		*h.dst = u
	}
	if c.logLength <= 0 {
		c.logLength = 100
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BrowseRecords returns every record of index, following browse cursors.
func (c *Client) BrowseRecords(ctx context.Context, index string) ([]Record, error) {
	records := make([]Record, 0)
	cursor := ""
	for page := 0; page < maxBrowsePages; page++ {
		query := url.Values{}
		if cursor != "" {
			query.Set("cursor", cursor)
		}
		var payload browseResponse
		err := c.do(ctx, request{
			endpoint: "browse",
			method:   http.MethodGet,
			base:     c.search,
			path:     "/1/indexes/" + url.PathEscape(index) + "/browse",
			query:    query,
			apiKey:   c.writeKey,
			document: true,
		}, &payload)
		if err != nil {
			return nil, err
		}
		for _, hit := range payload.Hits {
			records = append(records, recordFromMap(hit))
		}
		if payload.Cursor == "" {
			break
		}
		cursor = payload.Cursor
	}
	return records, nil
}

// DeleteRecord removes one record by objectID.
func (c *Client) DeleteRecord(ctx context.Context, index, objectID string) error {
	return c.do(ctx, request{
		endpoint: "delete_record",
		method:   http.MethodDelete,
		base:     c.search,
		path:     "/1/indexes/" + url.PathEscape(index) + "/" + url.PathEscape(objectID),
		apiKey:   c.writeKey,
	}, nil)
}

// GetSettings fetches the full settings document of index.
func (c *Client) GetSettings(ctx context.Context, index string) (Settings, error) {
	var payload Settings
	err := c.do(ctx, request{
		endpoint: "get_settings",
		method:   http.MethodGet,
		base:     c.search,
		path:     "/1/indexes/" + url.PathEscape(index) + "/settings",
		apiKey:   c.writeKey,
		document: true,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		payload = Settings{}
	}
	return payload, nil
}

// PutSettings replaces the settings document of index.
func (c *Client) PutSettings(ctx context.Context, index string, settings Settings) (SettingsUpdate, error) {
	if settings == nil {
		settings = Settings{}
	}
	var ack SettingsUpdate
	err := c.do(ctx, request{
		endpoint: "put_settings",
		method:   http.MethodPut,
		base:     c.search,
		path:     "/1/indexes/" + url.PathEscape(index) + "/settings",
		apiKey:   c.writeKey,
		body:     settings,
	}, &ack)
	if err != nil {
		return SettingsUpdate{}, err
	}
	return ack, nil
}

// FetchUsage retrieves daily usage series for index and merges them into rows.
func (c *Client) FetchUsage(ctx context.Context, index string) ([]UsageRow, error) {
	start, end := c.window()
	query := url.Values{}
	query.Set("startDate", start.Format(time.RFC3339))
	query.Set("endDate", end.Format(time.RFC3339))
	query.Set("granularity", "daily")

	var payload UsageSeries
	err := c.do(ctx, request{
		endpoint: "usage",
		method:   http.MethodGet,
		base:     c.usage,
		path:     "/1/usage/records,add_record_operations,delete_record_operations,browse_operations/" + url.PathEscape(index),
		query:    query,
		apiKey:   c.usageKey,
	}, &payload)
	if err != nil {
		return nil, err
	}
	return MergeUsage(payload), nil
}

// FetchQueryLogs retrieves the most recent API log entries for index.
func (c *Client) FetchQueryLogs(ctx context.Context, index string) ([]QueryLog, error) {
	query := url.Values{}
	query.Set("indexName", index)
	query.Set("length", strconv.Itoa(c.logLength))
	query.Set("offset", "0")
	query.Set("type", "all")

	var payload logsResponse
	err := c.do(ctx, request{
		endpoint: "logs",
		method:   http.MethodGet,
		base:     c.logs,
		path:     "/1/logs",
		query:    query,
		apiKey:   c.usageKey,
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Logs == nil {
		return []QueryLog{}, nil
	}
	return payload.Logs, nil
}

// FetchAnalytics issues the four analytics requests concurrently and returns
// their combination. The first failure cancels the rest and is returned on its
// own; partial results are dropped.
func (c *Client) FetchAnalytics(ctx context.Context, index string) (Analytics, error) {
	start, end := c.window()
	base := url.Values{}
	base.Set("index", index)
	base.Set("startDate", start.Format(dateLayout))
	base.Set("endDate", end.Format(dateLayout))

	top := cloneValues(base)
	top.Set("clickAnalytics", "true")
	top.Set("direction", "desc")
	top.Set("orderBy", "searchCount")
	top.Set("limit", strconv.Itoa(topSearchLimit))

	var (
		searches countResponse
		users    countResponse
		rate     noResultRateResponse
		topResp  topSearchesResponse
	)
	get := func(ctx context.Context, endpoint, path string, query url.Values, dest any) error {
		return c.do(ctx, request{
			endpoint: endpoint,
			method:   http.MethodGet,
			base:     c.analytics,
			path:     path,
			query:    query,
			apiKey:   c.writeKey,
		}, dest)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return get(gctx, "searches_count", "/2/searches/count", base, &searches) })
	g.Go(func() error { return get(gctx, "users_count", "/2/users/count", base, &users) })
	g.Go(func() error { return get(gctx, "no_result_rate", "/2/searches/noResultRate", base, &rate) })
	g.Go(func() error { return get(gctx, "top_searches", "/2/searches", top, &topResp) })
	if err := g.Wait(); err != nil {
		return Analytics{}, err
	}

	out := Analytics{
		TotalSearches: searches.Count,
		TotalUsers:    users.Count,
		NoResultRate:  rate.value(),
		TopSearches:   topResp.Searches,
	}
	if out.TopSearches == nil {
		out.TopSearches = []TopSearch{}
	}
	return out, nil
}

// window returns the reporting window: the configured start date through now.
func (c *Client) window() (time.Time, time.Time) {
	return c.start, c.now().UTC()
}

type request struct {
	endpoint string
	method   string
	base     *url.URL
	path     string // already escaped
	query    url.Values
	apiKey   string
	body     any
	document bool // decode with DocumentJSON
}

func (c *Client) do(ctx context.Context, r request, dest any) (err error) {
	started := time.Now()
	status := 0
	if c.recorder != nil {
		defer func() { c.recorder.ObserveRequest(r.endpoint, status, time.Since(started), err) }()
	}

	target := strings.TrimSuffix(r.base.String(), "/") + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Algolia-Application-Id", c.appID)
	req.Header.Set("X-Algolia-API-Key", r.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(r.method, r.path, resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	codec := json
	if r.document {
		codec = DocumentJSON
	}
	if err := codec.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

func parseBaseURL(host string) (*url.URL, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return nil, fmt.Errorf("host is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse host %q: %w", host, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse host %q: missing host", host)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
