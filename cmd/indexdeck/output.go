package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/console"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// printer writes command results in the selected format.
type printer struct {
	w      io.Writer
	format string
}

func (p printer) document(v any) error {
	switch p.format {
	case formatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", p.format)
	}
}

func (p printer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		})
	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}

func (p printer) records(records []algolia.Record) error {
	if p.format != formatTable {
		docs := make([]map[string]any, 0, len(records))
		for _, r := range records {
			docs = append(docs, r.Raw)
		}
		return p.document(docs)
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ObjectID, r.Name.Text(), r.ProductType, strings.Join(r.CategoryLabels(), ", ")})
	}
	return p.table([]string{"Object ID", "Name", "Type", "Categories"}, rows)
}

// settings prints the document as indented JSON for the table format, since
// it has no fixed columns.
func (p printer) settings(settings algolia.Settings) error {
	if p.format != formatTable {
		return p.document(settings)
	}
	text, err := console.FormatSettings(settings)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, text)
	return err
}

func (p printer) usage(rows []algolia.UsageRow) error {
	if p.format != formatTable {
		return p.document(rows)
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date,
			strconv.FormatInt(r.TotalRecords, 10),
			strconv.FormatInt(r.AddOps, 10),
			strconv.FormatInt(r.DeleteOps, 10),
			strconv.FormatInt(r.BrowseOps, 10),
		})
	}
	return p.table([]string{"Date", "Total records", "Add ops", "Delete ops", "Browse ops"}, out)
}

func (p printer) queryLogs(logs []algolia.QueryLog) error {
	if p.format != formatTable {
		return p.document(logs)
	}
	out := make([][]string, 0, len(logs))
	for _, l := range logs {
		out = append(out, []string{l.Timestamp, l.Method, l.AnswerCode, l.ProcessingTimeMS, l.URL})
	}
	return p.table([]string{"Timestamp", "Method", "Code", "ms", "URL"}, out)
}

func (p printer) analytics(a algolia.Analytics) error {
	if p.format != formatTable {
		return p.document(a)
	}
	summary := [][]string{
		{"Total searches", strconv.FormatInt(a.TotalSearches, 10)},
		{"Total users", strconv.FormatInt(a.TotalUsers, 10)},
		{"No result rate", fmt.Sprintf("%.2f%%", a.NoResultRate*100)},
	}
	if err := p.table([]string{"Metric", "Value"}, summary); err != nil {
		return err
	}
	top := make([][]string, 0, len(a.TopSearches))
	for _, s := range a.TopSearches {
		top = append(top, []string{s.Search, strconv.FormatInt(s.Count, 10), strconv.FormatInt(s.NbHits, 10)})
	}
	return p.table([]string{"Search", "Count", "Hits"}, top)
}
