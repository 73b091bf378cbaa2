package algolia

import (
	"sort"
	"strings"
	"time"
)

// Record is one index record from the browse endpoint. Raw keeps the full
// document exactly as the provider returned it.
type Record struct {
	ObjectID    string
	Name        Localized
	ProductType string
	Categories  []Localized
	Raw         map[string]any
}

// CategoryLabels returns the display text of every category.
func (r Record) CategoryLabels() []string {
	labels := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		if text := c.Text(); text != "" {
			labels = append(labels, text)
		}
	}
	return labels
}

// Localized is a per-locale string. Plain strings decode under the empty locale.
type Localized map[string]string

const preferredLocale = "en"

// Text returns the preferred locale, falling back to the first non-empty value
// in locale order.
func (l Localized) Text() string {
	if v := l[preferredLocale]; v != "" {
		return v
	}
	if v := l[""]; v != "" {
		return v
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := l[k]; v != "" {
			return v
		}
	}
	return ""
}

func recordFromMap(raw map[string]any) Record {
	rec := Record{
		ObjectID:    stringField(raw["objectID"]),
		Name:        localizedFrom(raw["name"]),
		ProductType: localizedFrom(raw["productType"]).Text(),
		Raw:         raw,
	}
	if cats, ok := raw["categories"].([]any); ok {
		rec.Categories = make([]Localized, 0, len(cats))
		for _, c := range cats {
			rec.Categories = append(rec.Categories, localizedFrom(c))
		}
	}
	return rec
}

func localizedFrom(v any) Localized {
	switch val := v.(type) {
	case string:
		return Localized{"": val}
	case map[string]any:
		out := make(Localized, len(val))
		for k, inner := range val {
			if s, ok := inner.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}

func stringField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Settings is an index settings document. It is opaque to indexdeck and is
// always replaced as a whole.
type Settings map[string]any

// SettingsUpdate is the acknowledgement returned by a settings PUT.
type SettingsUpdate struct {
	TaskID    int64  `json:"taskID" yaml:"taskID"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

// UsagePoint is one sample of a usage time series. T is epoch milliseconds.
type UsagePoint struct {
	T int64 `json:"t"`
	V int64 `json:"v"`
}

// UsageSeries mirrors the usage endpoint payload for the four metrics
// indexdeck requests.
type UsageSeries struct {
	Records                []UsagePoint `json:"records"`
	AddRecordOperations    []UsagePoint `json:"add_record_operations"`
	DeleteRecordOperations []UsagePoint `json:"delete_record_operations"`
	BrowseOperations       []UsagePoint `json:"browse_operations"`
}

// UsageRow is one merged day of usage.
type UsageRow struct {
	Timestamp    int64  `json:"timestamp" yaml:"timestamp"`
	Date         string `json:"date" yaml:"date"`
	TotalRecords int64  `json:"totalRecords" yaml:"totalRecords"`
	AddOps       int64  `json:"addOps" yaml:"addOps"`
	DeleteOps    int64  `json:"deleteOps" yaml:"deleteOps"`
	BrowseOps    int64  `json:"browseOps" yaml:"browseOps"`
}

// MergeUsage joins the series on timestamp equality. Every timestamp present
// in any series yields exactly one row; series without that timestamp
// contribute zero. Rows are ordered by timestamp.
func MergeUsage(s UsageSeries) []UsageRow {
	rows := make(map[int64]*UsageRow)
	row := func(t int64) *UsageRow {
		if r, ok := rows[t]; ok {
			return r
		}
		r := &UsageRow{
			Timestamp: t,
			Date:      time.UnixMilli(t).UTC().Format(dateLayout),
		}
		rows[t] = r
		return r
	}
	for _, p := range s.Records {
		row(p.T).TotalRecords = p.V
	}
	for _, p := range s.AddRecordOperations {
		row(p.T).AddOps = p.V
	}
	for _, p := range s.DeleteRecordOperations {
		row(p.T).DeleteOps = p.V
	}
	for _, p := range s.BrowseOperations {
		row(p.T).BrowseOps = p.V
	}

	out := make([]UsageRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// QueryLog is one entry of the provider's API log.
type QueryLog struct {
	Timestamp        string `json:"timestamp" yaml:"timestamp"`
	Method           string `json:"method" yaml:"method"`
	URL              string `json:"url" yaml:"url"`
	AnswerCode       string `json:"answer_code" yaml:"answer_code"`
	ProcessingTimeMS string `json:"processing_time_ms" yaml:"processing_time_ms"`
	IP               string `json:"ip" yaml:"ip"`
	Index            string `json:"index" yaml:"index"`
}

// ParsedTime returns the log timestamp when it parses.
func (q QueryLog) ParsedTime() time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(q.Timestamp))
	if err != nil {
		return time.Time{}
	}
	return t
}

// TopSearch is one row of the most frequent queries.
type TopSearch struct {
	Search string `json:"search" yaml:"search"`
	Count  int64  `json:"count" yaml:"count"`
	NbHits int64  `json:"nbHits" yaml:"nbHits"`
}

// Analytics combines the four analytics endpoints. It only exists when all
// four requests succeeded.
type Analytics struct {
	TotalSearches int64       `json:"totalSearches" yaml:"totalSearches"`
	TotalUsers    int64       `json:"totalUsers" yaml:"totalUsers"`
	NoResultRate  float64     `json:"noResultRate" yaml:"noResultRate"` // fraction in [0,1]
	TopSearches   []TopSearch `json:"topSearches" yaml:"topSearches"`
}

type browseResponse struct {
	Hits   []map[string]any `json:"hits"`
	Cursor string           `json:"cursor"`
}

type logsResponse struct {
	Logs []QueryLog `json:"logs"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type noResultRateResponse struct {
	Rate         *float64 `json:"rate"`
	NoResultRate *float64 `json:"noResultRate"`
}

func (r noResultRateResponse) value() float64 {
	switch {
	case r.Rate != nil:
		return *r.Rate
	case r.NoResultRate != nil:
		return *r.NoResultRate
	}
	return 0
}

type topSearchesResponse struct {
	Searches []TopSearch `json:"searches"`
}

type errorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
