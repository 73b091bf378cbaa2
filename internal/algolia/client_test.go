package algolia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/indexdeck/internal/config"
)

var fixedNow = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Config{
		AppID:         "APPID",
		WriteAPIKey:   "write-key",
		UsageAPIKey:   "usage-key",
		SearchHost:    server.URL,
		UsageHost:     server.URL,
		LogsHost:      server.URL,
		AnalyticsHost: server.URL,
		StartDate:     "2024-10-20",
		LogLength:     100,
	}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	c, err := NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestParseBaseURL_DefaultsToHTTPSAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("APP-dsn.algolia.net")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "APP-dsn.algolia.net", u.Host)

	u, err = parseBaseURL("http://127.0.0.1:1234/path?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:1234", u.String())

	_, err = parseBaseURL("  ")
	assert.Error(t, err)
}

func TestNewClient_RequiresAppID(t *testing.T) {
	_, err := NewClient(config.Config{UsageHost: "usage.algolia.com"})
	assert.Error(t, err)
}

func TestClient_BrowseRecordsSendsCredentialsAndFollowsCursor(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var cursors []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/indexes/products/browse", r.URL.Path)
		assert.Equal(t, "APPID", r.Header.Get("X-Algolia-Application-Id"))
		assert.Equal(t, "write-key", r.Header.Get("X-Algolia-API-Key"))

		mu.Lock()
		cursors = append(cursors, r.URL.Query().Get("cursor"))
		mu.Unlock()

		if r.URL.Query().Get("cursor") == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"hits": []map[string]any{{
					"objectID":    "sku-1",
					"name":        map[string]any{"en": "Blue Shirt", "de": "Blaues Hemd"},
					"productType": "apparel",
					"categories":  []any{map[string]any{"en": "Shirts"}, "Sale"},
				}},
				"cursor": "next-page",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"hits": []map[string]any{{"objectID": "sku-2", "name": "Plain Name"}},
		})
	}))

	records, err := c.BrowseRecords(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"", "next-page"}, cursors)
	assert.Equal(t, "sku-1", records[0].ObjectID)
	assert.Equal(t, "Blue Shirt", records[0].Name.Text())
	assert.Equal(t, "apparel", records[0].ProductType)
	assert.Equal(t, []string{"Shirts", "Sale"}, records[0].CategoryLabels())
	assert.Equal(t, "Plain Name", records[1].Name.Text())
	assert.Equal(t, "sku-2", records[1].Raw["objectID"])
}

func TestClient_BrowseRecordsMissingHitsIsEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits": null}`)
	}))

	records, err := c.BrowseRecords(context.Background(), "products")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestClient_DeleteRecordEscapesPathSegments(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotMethod = r.Method
		writeJSON(w, http.StatusOK, map[string]any{"deletedAt": "2026-03-05T10:00:00Z", "taskID": 7})
	}))

	require.NoError(t, c.DeleteRecord(context.Background(), "products", "sku/1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/1/indexes/products/sku%2F1", gotPath)
}

func TestClient_SettingsRoundTrip(t *testing.T) {
	t.Parallel()

	var putBody map[string]any
	var putContentType string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1/indexes/products/settings", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"hitsPerPage": 20, "searchableAttributes": []string{"name"}})
		case http.MethodPut:
			putContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			writeJSON(w, http.StatusOK, map[string]any{"taskID": 42, "updatedAt": "2026-03-05T10:00:00Z"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	settings, err := c.GetSettings(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, "20", fmt.Sprint(settings["hitsPerPage"]))

	ack, err := c.PutSettings(context.Background(), "products", Settings{"hitsPerPage": 50})
	require.NoError(t, err)
	assert.Equal(t, int64(42), ack.TaskID)
	assert.Equal(t, "application/json", putContentType)
	assert.EqualValues(t, 50, putBody["hitsPerPage"])
}

func TestClient_SettingsKeepLargeIntegers(t *testing.T) {
	t.Parallel()

	var putRaw string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"userData":{"seed":12345678901234567890},"hitsPerPage":20}`)
		case http.MethodPut:
			raw, _ := io.ReadAll(r.Body)
			putRaw = string(raw)
			writeJSON(w, http.StatusOK, map[string]any{"taskID": 1})
		}
	}))

	settings, err := c.GetSettings(context.Background(), "products")
	require.NoError(t, err)
	userData, ok := settings["userData"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12345678901234567890", fmt.Sprint(userData["seed"]))

	_, err = c.PutSettings(context.Background(), "products", settings)
	require.NoError(t, err)
	assert.Contains(t, putRaw, `"seed":12345678901234567890`)
	assert.NotContains(t, putRaw, "e+19")
}

func TestClient_NonSuccessStatusCarriesServerMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Index does not exist", "status": 404})
	}))

	_, err := c.GetSettings(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Index does not exist", ServerMessage(err))
	assert.True(t, IsNotFound(err))
}

func TestClient_NonSuccessStatusWithoutBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	err := c.DeleteRecord(context.Background(), "products", "sku-1")
	require.Error(t, err)
	assert.Empty(t, ServerMessage(err))
	assert.Contains(t, err.Error(), "502")
}

func TestClient_FetchUsageUsesWindowAndMergesSeries(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	day2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).UnixMilli()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/usage/records,add_record_operations,delete_record_operations,browse_operations/products", r.URL.Path)
		assert.Equal(t, "usage-key", r.Header.Get("X-Algolia-API-Key"))
		q := r.URL.Query()
		assert.Equal(t, "2024-10-20T00:00:00Z", q.Get("startDate"))
		assert.Equal(t, "2026-03-05T10:00:00Z", q.Get("endDate"))
		assert.Equal(t, "daily", q.Get("granularity"))
		writeJSON(w, http.StatusOK, map[string]any{
			"records":                  []map[string]int64{{"t": day1, "v": 100}, {"t": day2, "v": 110}},
			"add_record_operations":    []map[string]int64{{"t": day2, "v": 10}},
			"delete_record_operations": []map[string]int64{},
			"browse_operations":        []map[string]int64{{"t": day1, "v": 3}},
		})
	}))

	rows, err := c.FetchUsage(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, UsageRow{Timestamp: day1, Date: "2026-03-01", TotalRecords: 100, BrowseOps: 3}, rows[0])
	assert.Equal(t, UsageRow{Timestamp: day2, Date: "2026-03-02", TotalRecords: 110, AddOps: 10}, rows[1])
}

func TestClient_FetchQueryLogsEncodesQuery(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/logs", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "products", q.Get("indexName"))
		assert.Equal(t, "100", q.Get("length"))
		assert.Equal(t, "0", q.Get("offset"))
		assert.Equal(t, "all", q.Get("type"))
		writeJSON(w, http.StatusOK, map[string]any{"logs": []map[string]string{
			{"method": "GET", "url": "/1/indexes/products/browse", "answer_code": "200", "timestamp": "2026-03-05T09:00:00Z"},
		}})
	}))

	logs, err := c.FetchQueryLogs(context.Background(), "products")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "GET", logs[0].Method)
	assert.Equal(t, "200", logs[0].AnswerCode)
	assert.False(t, logs[0].ParsedTime().IsZero())
}

func TestClient_FetchQueryLogsMissingArrayIsEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))

	logs, err := c.FetchQueryLogs(context.Background(), "products")
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func analyticsHandler(t *testing.T, failPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "products", q.Get("index"))
		assert.Equal(t, "2024-10-20", q.Get("startDate"))
		assert.Equal(t, "2026-03-05", q.Get("endDate"))

		if r.URL.Path == failPath {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "analytics unavailable"})
			return
		}
		switch r.URL.Path {
		case "/2/searches/count":
			writeJSON(w, http.StatusOK, map[string]any{"count": 1200})
		case "/2/users/count":
			writeJSON(w, http.StatusOK, map[string]any{"count": 300})
		case "/2/searches/noResultRate":
			writeJSON(w, http.StatusOK, map[string]any{"rate": 0.125, "count": 1200, "noResultCount": 150})
		case "/2/searches":
			assert.Equal(t, "searchCount", q.Get("orderBy"))
			assert.Equal(t, "5", q.Get("limit"))
			writeJSON(w, http.StatusOK, map[string]any{"searches": []map[string]any{
				{"search": "shirt", "count": 90, "nbHits": 12},
				{"search": "", "count": 40, "nbHits": 500},
			}})
		default:
			http.NotFound(w, r)
		}
	})
}

func TestClient_FetchAnalyticsCombinesAllFour(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, analyticsHandler(t, ""))

	got, err := c.FetchAnalytics(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.TotalSearches)
	assert.Equal(t, int64(300), got.TotalUsers)
	assert.InDelta(t, 0.125, got.NoResultRate, 1e-9)
	require.Len(t, got.TopSearches, 2)
	assert.Equal(t, TopSearch{Search: "shirt", Count: 90, NbHits: 12}, got.TopSearches[0])
}

func TestClient_FetchAnalyticsFailsWhenAnyCallFails(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/2/searches/count", "/2/users/count", "/2/searches/noResultRate", "/2/searches"} {
		t.Run(path, func(t *testing.T) {
			c := newTestClient(t, analyticsHandler(t, path))

			got, err := c.FetchAnalytics(context.Background(), "products")
			require.Error(t, err)
			assert.Equal(t, Analytics{}, got)
			assert.Equal(t, "analytics unavailable", ServerMessage(err))
		})
	}
}

type recordedRequest struct {
	endpoint string
	status   int
	failed   bool
}

type fakeRecorder struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (f *fakeRecorder) ObserveRequest(endpoint string, status int, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recordedRequest{endpoint: endpoint, status: status, failed: err != nil})
}

func TestClient_ReportsRequestsToRecorder(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hits": []any{}})
	}), WithRecorder(rec))

	_, err := c.BrowseRecords(context.Background(), "products")
	require.NoError(t, err)
	require.Error(t, c.DeleteRecord(context.Background(), "products", "sku-1"))

	assert.Equal(t, []recordedRequest{
		{endpoint: "browse", status: http.StatusOK},
		{endpoint: "delete_record", status: http.StatusForbidden, failed: true},
	}, rec.seen)
}
