package table

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/formatter"
)

type customer struct {
	Name    string
	Revenue string
	Growth  string
	Orders  int
	Region  string
}

func customerTable(t *testing.T) *Table[customer] {
	t.Helper()
	tbl, err := New(
		Column[customer]{Key: "name", Header: "Customer", Searchable: true,
			Accessor: func(c customer) domain.Value { return domain.Text(c.Name) }},
		Column[customer]{Key: "revenue", Header: "Revenue",
			Accessor: func(c customer) domain.Value { return domain.Text(c.Revenue) }},
		Column[customer]{Key: "growth", Header: "Growth",
			Accessor: func(c customer) domain.Value { return domain.Text(c.Growth) }},
		Column[customer]{Key: "orders", Header: "Orders",
			Accessor: func(c customer) domain.Value { return domain.Int(c.Orders) }},
		Column[customer]{Key: "region", Header: "Region", Searchable: true,
			Accessor: func(c customer) domain.Value { return domain.Text(c.Region) }},
	)
	require.NoError(t, err)
	return tbl
}

func names(rows []customer) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestNew_RejectsBadColumns(t *testing.T) {
	accessor := func(c customer) domain.Value { return domain.Text(c.Name) }

	_, err := New(Column[customer]{Key: "", Accessor: accessor})
	assert.EqualError(t, err, "column key cannot be empty")

	_, err = New(Column[customer]{Key: "name"})
	assert.EqualError(t, err, `column "name" has no accessor`)

	_, err = New(
		Column[customer]{Key: "name", Accessor: accessor},
		Column[customer]{Key: "name", Accessor: accessor},
	)
	assert.EqualError(t, err, `duplicate column "name"`)
}

func TestSort_LeaderboardByRevenueDescending(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "Acme", Revenue: "$500"},
		{Name: "Beta", Revenue: "$1,200"},
	}

	sorted, err := tbl.Sort(rows, "revenue", domain.SortDescending)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Acme"}, names(sorted))

	// Lexicographic order would have put "$500" after "$1,200"
	sorted, err = tbl.Sort(rows, "revenue", domain.SortAscending)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Beta"}, names(sorted))
}

func TestSort_FormattedCurrencyMatchesNumericOrder(t *testing.T) {
	tbl := customerTable(t)
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		n := 1 + rng.Intn(30)
		rows := make([]customer, n)
		amounts := make(map[string]decimal.Decimal, n)
		for i := range rows {
			cents := rng.Int63n(500_000_000) - 1_000_000
			amount := decimal.New(cents, -2)
			name := string(rune('A'+i%26)) + strings.Repeat("x", i/26)
			rows[i] = customer{Name: name, Revenue: formatter.Currency(amount)}
			amounts[name] = amount
		}

		sorted, err := tbl.Sort(rows, "revenue", domain.SortAscending)
		require.NoError(t, err)

		for i := 1; i < len(sorted); i++ {
			prev, cur := amounts[sorted[i-1].Name], amounts[sorted[i].Name]
			assert.True(t, prev.LessThanOrEqual(cur), "round %d: %s before %s", round, prev, cur)
		}
	}
}

func TestSort_PercentStrings(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "a", Growth: "+12.5%"},
		{Name: "b", Growth: "-3%"},
		{Name: "c", Growth: "4.0%"},
	}

	sorted, err := tbl.Sort(rows, "growth", domain.SortDescending)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(sorted))
}

func TestSort_IsStable(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "first", Orders: 2},
		{Name: "second", Orders: 1},
		{Name: "third", Orders: 2},
		{Name: "fourth", Orders: 1},
		{Name: "fifth", Orders: 2},
	}

	asc, err := tbl.Sort(rows, "orders", domain.SortAscending)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "fourth", "first", "third", "fifth"}, names(asc))

	desc, err := tbl.Sort(rows, "orders", domain.SortDescending)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third", "fifth", "second", "fourth"}, names(desc))
}

func TestSort_InvalidValuesSortLast(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "broken", Revenue: "$n/a"},
		{Name: "low", Revenue: "$10"},
		{Name: "high", Revenue: "$20"},
	}

	for _, dir := range []domain.SortDirection{domain.SortAscending, domain.SortDescending} {
		sorted, err := tbl.Sort(rows, "revenue", dir)
		require.NoError(t, err)
		assert.Equal(t, "broken", sorted[len(sorted)-1].Name, "direction %s", dir)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{{Name: "b", Orders: 2}, {Name: "a", Orders: 1}}
	original := slices.Clone(rows)

	_, err := tbl.Sort(rows, "orders", domain.SortAscending)
	require.NoError(t, err)
	assert.Equal(t, original, rows)
}

func TestSort_UnknownColumn(t *testing.T) {
	tbl := customerTable(t)
	_, err := tbl.Sort([]customer{{Name: "a"}}, "nope", domain.SortAscending)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestSort_Empty(t *testing.T) {
	tbl := customerTable(t)
	sorted, err := tbl.Sort(nil, "name", domain.SortAscending)
	require.NoError(t, err)
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestFilter(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "Acme Aero", Region: "West"},
		{Name: "Beta Parts", Region: "East"},
		{Name: "Gamma Avionics", Region: "Northwest"},
	}

	tests := []struct {
		name   string
		query  string
		fields []string
		want   []string
	}{
		{name: "empty query keeps everything", query: "", want: []string{"Acme Aero", "Beta Parts", "Gamma Avionics"}},
		{name: "case-insensitive name match", query: "ACME", want: []string{"Acme Aero"}},
		{name: "matches any searchable column", query: "west", want: []string{"Acme Aero", "Gamma Avionics"}},
		{name: "restricted to named field", query: "west", fields: []string{"name"}, want: []string{}},
		{name: "no match", query: "delta", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Filter(rows, tt.query, tt.fields...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilter_SubsetAndComplement(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "Acme"}, {Name: "acme west"}, {Name: "Beta"}, {Name: "ACMEish"}, {Name: "Delta"},
	}

	kept, err := tbl.Filter(rows, "acme", "name")
	require.NoError(t, err)

	for _, row := range rows {
		matches := strings.Contains(strings.ToLower(row.Name), "acme")
		assert.Equal(t, matches, slices.Contains(kept, row), row.Name)
	}
}

func TestFilter_KeepsSurroundingSpaces(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{{Name: "Northwest"}, {Name: "Far west"}, {Name: "West Wing"}}

	got, err := tbl.Filter(rows, " west", "name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Far west"}, names(got))

	got, err = tbl.Filter(rows, "   ", "name")
	require.NoError(t, err)
	assert.Equal(t, names(rows), names(got))
}

func TestFilter_UnknownField(t *testing.T) {
	tbl := customerTable(t)
	_, err := tbl.Filter([]customer{{Name: "a"}}, "a", "missing")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestApply(t *testing.T) {
	tbl := customerTable(t)
	rows := []customer{
		{Name: "Acme West", Revenue: "$500", Region: "West"},
		{Name: "Beta", Revenue: "$1,200", Region: "East"},
		{Name: "Gamma West", Revenue: "$900", Region: "West"},
	}

	got, err := tbl.Apply(rows, domain.ViewState{
		SortKey:      "revenue",
		Direction:    domain.SortDescending,
		Query:        "west",
		SearchFields: []string{"region"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma West", "Acme West"}, names(got))

	_, err = tbl.Apply(rows, domain.ViewState{Direction: "up"})
	assert.Error(t, err)

	unsorted, err := tbl.Apply(rows, domain.ViewState{})
	require.NoError(t, err)
	assert.Equal(t, names(rows), names(unsorted))
}

func TestRecordTable(t *testing.T) {
	tbl, err := RecordTable("shop", "total")
	require.NoError(t, err)

	rows := []Record{
		{"shop": domain.Text("Hangar 9"), "total": domain.Text("$2,500.00")},
		{"shop": domain.Text("Skyline MRO")},
		{"shop": domain.Text("Jetworks"), "total": domain.Text("$300.00")},
	}

	sorted, err := tbl.Sort(rows, "total", domain.SortDescending)
	require.NoError(t, err)

	got := make([]string, len(sorted))
	for i, r := range sorted {
		got[i] = r["shop"].Text
	}
	assert.Equal(t, []string{"Hangar 9", "Jetworks", "Skyline MRO"}, got)

	filtered, err := tbl.Filter(rows, "sky")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestMustNewRecordTable_DuplicateKey(t *testing.T) {
	assert.Panics(t, func() { MustNewRecordTable("shop", "shop") })
	assert.NotPanics(t, func() { MustNewRecordTable("shop", "total") })
}
