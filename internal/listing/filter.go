package listing

import (
	"strings"

	"github.com/five82/indexdeck/internal/algolia"
)

// FilterRecords returns the records whose name, objectID, product type or any
// category label contains term, ignoring case. A blank term returns records
// unchanged. Order is preserved.
func FilterRecords(records []algolia.Record, term string) []algolia.Record {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return records
	}
	out := make([]algolia.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec algolia.Record, needle string) bool {
	fields := append([]string{rec.Name.Text(), rec.ObjectID, rec.ProductType}, rec.CategoryLabels()...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
