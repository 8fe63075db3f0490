package frame

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, csv string) *Frame {
	t.Helper()
	f, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return f
}

func TestReadCSVParsesNumbersAndKeepsRaw(t *testing.T) {
	f := readFixture(t, "date,campaign,spend\n2024-01-01,Alpha,\"1,250.5\"\n2024-01-02,Beta,\n")
	require.Equal(t, 2, f.NumRows())

	spend := f.Value(0, "spend")
	assert.True(t, spend.HasNum)
	assert.Equal(t, 1250.5, spend.Num)

	assert.True(t, f.Value(1, "spend").IsNull())
	assert.Equal(t, "Alpha", f.Value(0, "campaign").Raw)
}

func TestWithDateColumnNullsUnparsable(t *testing.T) {
	f := readFixture(t, "date,spend\n2024-01-05,10\nnot-a-date,20\n")
	f = f.WithDateColumn("date")

	require.True(t, f.Value(0, "date").HasDate)
	assert.Equal(t, "2024-01-05", f.Value(0, "date").Date.Format("2006-01-02"))

	bad := f.Value(1, "date")
	assert.False(t, bad.HasDate)
	assert.Equal(t, "not-a-date", bad.Raw)

	// coercion is idempotent
	again := f.WithDateColumn("date")
	assert.Equal(t, f.Value(0, "date"), again.Value(0, "date"))
}

func TestConcatUnionsColumnsAndKeepsRowOrder(t *testing.T) {
	a := readFixture(t, "date,spend,clicks\n2024-01-01,100,5\n")
	b := readFixture(t, "date,spend\n2024-01-02,50\n2024-01-03,60\n")

	out := Concat(a, b)
	assert.Equal(t, []string{"date", "spend", "clicks"}, out.Columns())
	require.Equal(t, 3, out.NumRows())

	// rows of a first, then b, in order
	assert.Equal(t, "2024-01-01", out.Value(0, "date").Raw)
	assert.Equal(t, "2024-01-03", out.Value(2, "date").Raw)

	// b has no clicks column: its cells are null, not zero
	assert.True(t, out.Value(1, "clicks").IsNull())
	assert.True(t, out.Value(0, "clicks").HasNum)
}

func TestConcatOfNothingIsEmpty(t *testing.T) {
	out := Concat()
	assert.Equal(t, 0, out.NumRows())
	assert.Empty(t, out.Columns())

	out = Concat(nil, nil)
	assert.Equal(t, 0, out.NumRows())
}

func TestSumDistinguishesAbsentFromZero(t *testing.T) {
	f := readFixture(t, "spend\n10\n15\n")

	total, ok := f.Sum("spend")
	assert.True(t, ok)
	assert.Equal(t, 25.0, total)

	_, ok = f.Sum("clicks")
	assert.False(t, ok, "absent column must not sum to zero")
}

func TestGroupSumLeavesEmptyGroupsNull(t *testing.T) {
	a := readFixture(t, "source,clicks,spend\nFacebook,5,100\nFacebook,7,50\n")
	b := readFixture(t, "source,spend\nTikTok,40\n")
	f := Concat(a, b)

	g := f.GroupSum("source", "spend", "clicks", "missing")
	assert.Equal(t, []string{"source", "spend", "clicks"}, g.Columns())
	require.Equal(t, 2, g.NumRows())

	assert.Equal(t, 150.0, g.Value(0, "spend").Num)
	assert.Equal(t, 12.0, g.Value(0, "clicks").Num)

	assert.Equal(t, "TikTok", g.Value(1, "source").Raw)
	assert.True(t, g.Value(1, "clicks").IsNull(), "group with no click cells must be null")
	assert.Equal(t, 40.0, g.Value(1, "spend").Num)
}

func TestGroupSumByDate(t *testing.T) {
	f := readFixture(t, "date,spend\n2024-01-01,10\n2024-01-02,5\n2024-01-01,20\n")
	f = f.WithDateColumn("date")

	g := f.GroupSum("date", "spend")
	require.Equal(t, 2, g.NumRows())
	assert.Equal(t, 30.0, g.Value(0, "spend").Num)
	assert.Equal(t, 5.0, g.Value(1, "spend").Num)
}

func TestFilterSharesRowsWithoutMutating(t *testing.T) {
	f := readFixture(t, "spend\n10\n20\n30\n")
	sub := f.Filter(func(i int) bool { return f.Value(i, "spend").Num > 15 })

	assert.Equal(t, 3, f.NumRows(), "filter must not mutate the source")
	require.Equal(t, 2, sub.NumRows())
	assert.Equal(t, 20.0, sub.Value(0, "spend").Num)
}

func TestSortStableKeepsTieOrder(t *testing.T) {
	f := readFixture(t, "date,campaign\n2024-01-01,first\n2024-01-02,x\n2024-01-01,second\n")
	f = f.WithDateColumn("date")

	sorted := f.SortStable(func(i, j int) bool {
		return f.Value(i, "date").Date.After(f.Value(j, "date").Date)
	})
	assert.Equal(t, "x", sorted.Value(0, "campaign").Raw)
	assert.Equal(t, "first", sorted.Value(1, "campaign").Raw)
	assert.Equal(t, "second", sorted.Value(2, "campaign").Raw)
}

func TestProjectKeepsOnlyExistingColumns(t *testing.T) {
	f := readFixture(t, "date,spend\n2024-01-01,10\n")
	p := f.Project([]string{"spend", "adset", "date"})
	assert.Equal(t, []string{"spend", "date"}, p.Columns())
	assert.Equal(t, 1, p.NumRows())
}

func TestParseDateLayouts(t *testing.T) {
	for _, s := range []string{"2024-03-09", "2024/03/09", "2024-03-09 13:00:00"} {
		d, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d)
	}
	_, ok := ParseDate("9th of March")
	assert.False(t, ok)
}

func TestMinMaxDate(t *testing.T) {
	f := readFixture(t, "date\n2024-01-05\nbogus\n2024-01-02\n")
	f = f.WithDateColumn("date")

	min, max, ok := f.MinMaxDate("date")
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", min.Format("2006-01-02"))
	assert.Equal(t, "2024-01-05", max.Format("2006-01-02"))

	_, _, ok = New([]string{"x"}).MinMaxDate("date")
	assert.False(t, ok)
}
