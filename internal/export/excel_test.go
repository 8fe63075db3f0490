package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/angelcm/adboard-go/internal/models"
)

func TestWorkbookRoundTrip(t *testing.T) {
	snap := models.Snapshot{
		Spend:             models.MetricOf(150),
		AttributedRevenue: models.MetricOf(400),
		ROAS:              models.MetricOf(2.6667),
	}
	platforms := models.Table{
		Columns: []string{"source", "spend", "clicks"},
		Rows: [][]any{
			{"Facebook", 100.0, 50.0},
			{"TikTok", 40.0, nil},
		},
	}
	campaigns := models.Table{
		Columns: []string{"date", "source", "campaign", "spend"},
		Rows:    [][]any{{"2024-01-01", "Facebook", "Alpha", 100.0}},
	}

	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf, snap, platforms, campaigns))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"KPIs", "Platforms", "Campaigns"}, f.GetSheetList())

	spend, err := f.GetCellValue("KPIs", "B2")
	require.NoError(t, err)
	assert.Equal(t, "$150", spend)

	roas, err := f.GetCellValue("KPIs", "B9")
	require.NoError(t, err)
	assert.Equal(t, "2.67", roas)

	// unavailable metrics export as the placeholder, not zero
	orders, err := f.GetCellValue("KPIs", "B6")
	require.NoError(t, err)
	assert.Equal(t, models.Placeholder, orders)

	source, err := f.GetCellValue("Platforms", "A3")
	require.NoError(t, err)
	assert.Equal(t, "TikTok", source)

	// null cell stays empty
	clicks, err := f.GetCellValue("Platforms", "C3")
	require.NoError(t, err)
	assert.Equal(t, "", clicks)

	campaign, err := f.GetCellValue("Campaigns", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", campaign)
}
