package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsOutcomes(t *testing.T) {
	r := New()

	r.ObserveRequest("browse", 200, 40*time.Millisecond, nil)
	r.ObserveRequest("browse", 200, 60*time.Millisecond, nil)
	r.ObserveRequest("browse", 503, time.Second, errors.New("unavailable"))
	r.ObserveRequest("usage", 0, time.Second, errors.New("dial"))

	assert.InDelta(t, 2, testutil.ToFloat64(r.total.WithLabelValues("browse", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.total.WithLabelValues("browse", OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.total.WithLabelValues("usage", OutcomeError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.status.WithLabelValues("browse", "503")), 0)

	// one histogram series per endpoint; status-less requests add no code series
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))
	assert.Equal(t, 2, testutil.CollectAndCount(r.status))
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := New()
	r.ObserveRequest("get_settings", 200, 10*time.Millisecond, nil)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `indexdeck_api_requests_total{endpoint="get_settings",outcome="success"} 1`)
	assert.Contains(t, string(body), "indexdeck_api_request_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRecorder_ServeDisabledWithoutAddress(t *testing.T) {
	r := New()
	assert.NoError(t, r.Serve(context.Background(), "", nil))
}

func TestRecorder_ServeStopsOnCancel(t *testing.T) {
	// reserve a free port, then hand it to Serve
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, addr, nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
