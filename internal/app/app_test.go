package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ALGOLIA_APP_ID", "ALGOLIA_WRITE_API_KEY", "ALGOLIA_SEARCH_API_KEY", "ALGOLIA_USAGE_API_KEY",
		"REACT_APP_ALGOLIA_APP_ID", "REACT_APP_ALGOLIA_WRITE_API_KEY",
		"REACT_APP_ALGOLIA_SEARCH_API_KEY", "REACT_APP_ALGOLIA_USAGE_API_KEY",
		"ALGOLIA_SEARCH_HOST", "INDEXDECK_LOG_FILE", "INDEXDECK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSetupRejectsMissingCredentials(t *testing.T) {
	clearCredentialEnv(t)
	path := writeConfig(t, `app_id = "APP"`+"\n")

	_, err := Setup(Options{ConfigPath: path})
	if err == nil {
		t.Fatal("expected error for missing keys")
	}
	if !strings.Contains(err.Error(), "ALGOLIA_WRITE_API_KEY") {
		t.Fatalf("expected missing key to be named, got %v", err)
	}
}

func TestSetupWiresConsoleToProvider(t *testing.T) {
	clearCredentialEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Algolia-API-Key") != "write-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[{"objectID":"sku-1","name":"Shoe"}]}`))
	}))
	defer server.Close()

	logFile := filepath.Join(t.TempDir(), "logs", "indexdeck.log")
	path := writeConfig(t, strings.Join([]string{
		`app_id = "APP"`,
		`write_api_key = "write-key"`,
		`usage_api_key = "usage-key"`,
		`search_host = "` + server.URL + `"`,
		`log_file = "` + logFile + `"`,
		`log_level = "debug"`,
	}, "\n")+"\n")

	rt, err := Setup(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	records, err := rt.Console.Records(context.Background(), "products")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].ObjectID != "sku-1" {
		t.Fatalf("unexpected records %+v", records)
	}

	count, err := testutil.GatherAndCount(rt.Metrics.Registry(), "indexdeck_api_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one request series, got %d", count)
	}

	rt.Close()
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "action completed") {
		t.Fatalf("expected console activity in log file, got %s", data)
	}
}

func TestStartMetricsWithoutAddressIsNoop(t *testing.T) {
	rt := &Runtime{}
	stop := rt.StartMetrics(context.Background(), "")
	stop()
}
