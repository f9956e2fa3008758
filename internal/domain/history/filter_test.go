package history

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func filterFixture() []*Record {
	return []*Record{
		{ID: "id-1", Source: "Manual Input", Preview: "selling fresh CC dumps", Category: "Financial Fraud", Severity: SeverityHigh},
		{ID: "id-2", Source: "Upload", Preview: "vacation photos from bali", Category: "Normal", Severity: SeveritySafe},
		{ID: "id-3", Source: "Crawler", Preview: "glock 19 brand new", Category: "Weapons Sales", Severity: SeverityCritical},
		{ID: "id-4", Source: "Crawler", Preview: "fresh ID scans available", Category: "Identity Theft", Severity: SeverityHigh},
	}
}

func TestFilterTextMatchesAnyField(t *testing.T) {
	records := filterFixture()

	// preview
	out := Filter(records, Query{Text: "GLOCK"})
	require.Len(t, out, 1)
	require.Equal(t, RecordID("id-3"), out[0].ID)

	// source
	out = Filter(records, Query{Text: "crawler"})
	require.Len(t, out, 2)

	// id
	out = Filter(records, Query{Text: "id-2"})
	require.Len(t, out, 1)
	require.Equal(t, RecordID("id-2"), out[0].ID)
}

func TestFilterCategoryAndSeverity(t *testing.T) {
	records := filterFixture()

	out := Filter(records, Query{Category: "Weapons Sales"})
	require.Len(t, out, 1)

	out = Filter(records, Query{Severity: "HIGH"})
	require.Len(t, out, 2)

	out = Filter(records, Query{Category: FilterAll, Severity: FilterAll})
	require.Len(t, out, len(records))
}

func TestFilterPredicatesAreANDed(t *testing.T) {
	records := filterFixture()

	out := Filter(records, Query{Text: "fresh", Severity: "HIGH", Category: "Identity Theft"})
	require.Len(t, out, 1)
	require.Equal(t, RecordID("id-4"), out[0].ID)

	out = Filter(records, Query{Text: "fresh", Category: "Weapons Sales"})
	require.Empty(t, out)
}

func TestFilterPreservesOrder(t *testing.T) {
	records := filterFixture()

	out := Filter(records, Query{Severity: "HIGH"})
	require.Equal(t, RecordID("id-1"), out[0].ID)
	require.Equal(t, RecordID("id-4"), out[1].ID)
}

func TestPaginateClipsToAvailable(t *testing.T) {
	records := filterFixture()

	res := Paginate(records, 1, 3)
	require.Len(t, res.Data, 3)
	require.Equal(t, int64(4), res.Total)
	require.Equal(t, 2, res.TotalPages)

	res = Paginate(records, 2, 3)
	require.Len(t, res.Data, 1)

	// page beyond the end comes back empty, not an error
	res = Paginate(records, 5, 3)
	require.Empty(t, res.Data)
	require.Equal(t, 5, res.Page)
}

func TestPaginateDefaults(t *testing.T) {
	records := filterFixture()

	res := Paginate(records, 0, 0)
	require.Equal(t, 1, res.Page)
	require.Equal(t, 20, res.PageSize)
	require.Len(t, res.Data, 4)
}

func TestPaginateClonesData(t *testing.T) {
	records := filterFixture()
	records[0].Keywords = []string{"cc"}

	res := Paginate(records, 1, 1)
	res.Data[0].Keywords[0] = "changed"

	require.Equal(t, "cc", records[0].Keywords[0])
}
