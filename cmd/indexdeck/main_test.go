package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/console"
	"github.com/five82/indexdeck/internal/state"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("indexdeck"))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestCLI_DefaultsToTUI(t *testing.T) {
	_, kctx := parse(t)
	assert.Equal(t, "tui", kctx.Command())
}

func TestCLI_RecordsListIsDefaultSubcommand(t *testing.T) {
	cli, kctx := parse(t, "records", "products", "-f", "shoe", "-o", "json")
	assert.Equal(t, "records list <index>", kctx.Command())
	assert.Equal(t, "products", cli.Records.List.Index)
	assert.Equal(t, "shoe", cli.Records.List.Filter)
	assert.Equal(t, "json", cli.Output)
	assert.Equal(t, 10, cli.Records.List.Size)
}

func TestCLI_RejectsUnknownPageSize(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("indexdeck"))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"records", "list", "products", "--size", "15"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--size")
}

func sampleRecords() []algolia.Record {
	return []algolia.Record{
		{
			ObjectID:    "sku-1",
			Name:        algolia.Localized{"en": "Running shoe"},
			ProductType: "footwear",
			Categories:  []algolia.Localized{{"en": "Shoes"}, {"": "Sale"}},
			Raw:         map[string]any{"objectID": "sku-1", "productType": "footwear"},
		},
	}
}

func TestPrinter_RecordsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printer{w: &buf, format: formatTable}.records(sampleRecords()))

	out := buf.String()
	for _, want := range []string{"Object ID", "sku-1", "Running shoe", "footwear", "Shoes, Sale"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinter_RecordsJSONUsesRawDocuments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printer{w: &buf, format: formatJSON}.records(sampleRecords()))
	assert.JSONEq(t, `[{"objectID":"sku-1","productType":"footwear"}]`, buf.String())
}

func TestPrinter_UsageYAML(t *testing.T) {
	var buf bytes.Buffer
	rows := []algolia.UsageRow{{Timestamp: 1, Date: "1970-01-01", AddOps: 5, BrowseOps: 2}}
	require.NoError(t, printer{w: &buf, format: formatYAML}.usage(rows))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "1970-01-01", decoded[0]["date"])
	assert.Equal(t, 5, decoded[0]["addOps"])
	assert.Equal(t, 0, decoded[0]["deleteOps"])
}

func TestPrinter_AnalyticsTableShowsPercent(t *testing.T) {
	var buf bytes.Buffer
	a := algolia.Analytics{TotalSearches: 10, TotalUsers: 3, NoResultRate: 0.25,
		TopSearches: []algolia.TopSearch{{Search: "shoe", Count: 4, NbHits: 9}}}
	require.NoError(t, printer{w: &buf, format: formatTable}.analytics(a))
	assert.Contains(t, buf.String(), "25.00%")
	assert.Contains(t, buf.String(), "shoe")
}

func TestOperatorError(t *testing.T) {
	validation := &console.ValidationError{Field: "index", Message: "Index is required."}
	assert.EqualError(t, operatorError(state.OpFetchUsage, validation), "Index is required.")

	malformed := errors.Join(console.ErrMalformedInput, errors.New("bad token"))
	assert.EqualError(t, operatorError(state.OpUpdateSettings, malformed), state.MsgInvalidJSON)

	server := &algolia.APIError{Method: "GET", Path: "/1/indexes/x/settings", Status: 404, Message: "Index does not exist"}
	assert.EqualError(t, operatorError(state.OpFetchSettings, server), "Index does not exist")

	cause := errors.New("dial tcp: connection refused")
	err := operatorError(state.OpFetchRecords, cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to fetch records. Please try again."))
}

func TestReadDocumentFromStdin(t *testing.T) {
	prev := stdin
	stdin = strings.NewReader(`{"hitsPerPage": 5}`)
	t.Cleanup(func() { stdin = prev })

	text, err := readDocument("-")
	require.NoError(t, err)
	assert.Equal(t, `{"hitsPerPage": 5}`, text)
}

func TestRecordsListCmd_EndToEnd(t *testing.T) {
	for _, key := range []string{
		"ALGOLIA_APP_ID", "ALGOLIA_WRITE_API_KEY", "ALGOLIA_SEARCH_API_KEY", "ALGOLIA_USAGE_API_KEY",
		"ALGOLIA_SEARCH_HOST", "INDEXDECK_LOG_FILE", "INDEXDECK_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits":[
			{"objectID":"sku-1","name":{"en":"Running shoe"}},
			{"objectID":"sku-2","name":{"en":"Rain jacket"}}
		]}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(strings.Join([]string{
		`app_id = "APP"`,
		`write_api_key = "write"`,
		`usage_api_key = "usage"`,
		`search_host = "` + server.URL + `"`,
		`log_file = "` + filepath.Join(dir, "indexdeck.log") + `"`,
	}, "\n")), 0o644))

	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })

	cmd := &RecordsListCmd{Index: "products", Filter: "jacket", Page: 1, Size: 10}
	require.NoError(t, cmd.Run(context.Background(), &Globals{Config: configPath, Output: formatJSON}))

	assert.Contains(t, buf.String(), "sku-2")
	assert.NotContains(t, buf.String(), "sku-1")
}
