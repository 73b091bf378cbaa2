package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/indexdeck/internal/algolia"
)

func sampleRecords() []algolia.Record {
	return []algolia.Record{
		{ObjectID: "sku-1", Name: algolia.Localized{"en": "Blue Shirt"}, ProductType: "apparel"},
		{ObjectID: "sku-2", Name: algolia.Localized{"": "Garden Hose"}, ProductType: "outdoor",
			Categories: []algolia.Localized{{"en": "Garden"}}},
		{ObjectID: "sku-3", Name: algolia.Localized{"de": "Rotes Hemd"}, ProductType: "Apparel",
			Categories: []algolia.Localized{{"en": "Sale"}, {"en": "Shirts"}}},
	}
}

func ids(records []algolia.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ObjectID)
	}
	return out
}

func TestFilterRecords(t *testing.T) {
	records := sampleRecords()

	cases := []struct {
		name string
		term string
		want []string
	}{
		{"blank returns all", "  ", []string{"sku-1", "sku-2", "sku-3"}},
		{"name", "shirt", []string{"sku-1", "sku-3"}},
		{"object id", "SKU-2", []string{"sku-2"}},
		{"product type ignores case", "APPAREL", []string{"sku-1", "sku-3"}},
		{"category", "sale", []string{"sku-3"}},
		{"no match", "kayak", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterRecords(records, tc.term)))
		})
	}
}

func TestFilterRecords_Idempotent(t *testing.T) {
	once := FilterRecords(sampleRecords(), "shirt")
	twice := FilterRecords(once, "shirt")
	assert.Equal(t, once, twice)
}

func TestFilterRecords_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterRecords(nil, "x"))
	assert.Empty(t, FilterRecords([]algolia.Record{}, ""))
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPager_Slice(t *testing.T) {
	items := seq(25)

	p := NewPager(10)
	assert.Equal(t, seq(10), Slice(items, p))

	p = p.SetPage(3, len(items))
	assert.Equal(t, []int{20, 21, 22, 23, 24}, Slice(items, p))
	assert.Equal(t, 3, p.PageCount(len(items)))
}

func TestPager_SetSizeResetsPage(t *testing.T) {
	p := NewPager(10).SetPage(2, 25)
	require.Equal(t, 2, p.Page)

	p = p.SetSize(20)
	assert.Equal(t, Pager{Page: 1, Size: 20}, p)
}

func TestPager_SetPageClamps(t *testing.T) {
	p := NewPager(10)
	assert.Equal(t, 1, p.SetPage(0, 25).Page)
	assert.Equal(t, 3, p.SetPage(9, 25).Page)
	assert.Equal(t, 1, p.SetPage(4, 0).Page)
}

func TestPager_NextPrevStayInBounds(t *testing.T) {
	p := NewPager(10)
	p = p.Prev(25)
	assert.Equal(t, 1, p.Page)
	p = p.Next(25).Next(25).Next(25)
	assert.Equal(t, 3, p.Page)
}

func TestPager_SliceOutOfRangePageIsEmpty(t *testing.T) {
	p := Pager{Page: 5, Size: 10}
	assert.Empty(t, Slice(seq(25), p))
	assert.Empty(t, Slice([]int{}, NewPager(10)))
}

func TestPager_CycleSize(t *testing.T) {
	p := NewPager(10).SetPage(2, 30)
	p = p.CycleSize()
	assert.Equal(t, Pager{Page: 1, Size: 20}, p)
	p = p.CycleSize().CycleSize()
	assert.Equal(t, 10, p.Size)
	assert.Equal(t, 10, NextPageSize(7))
}
