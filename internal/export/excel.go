package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/angelcm/adboard-go/internal/models"
)

// Workbook writes an xlsx snapshot of the filtered dashboard: one sheet
// of scalar KPIs, one per tabular breakdown. Unavailable metrics export
// as the display placeholder so the sheet reads like the page.
func Workbook(w io.Writer, snap models.Snapshot, platforms, campaigns models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "KPIs"); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	kpis := [][]any{
		{"Metric", "Value"},
		{"Total Spend", snap.Spend.Currency()},
		{"Impressions", snap.Impressions.Count()},
		{"Clicks", snap.Clicks.Count()},
		{"Attributed Revenue", snap.AttributedRevenue.Currency()},
		{"Orders", snap.Orders.Count()},
		{"Total Revenue", snap.TotalRevenue.Currency()},
		{"Gross Profit", snap.GrossProfit.Currency()},
		{"ROAS", snap.ROAS.Ratio()},
		{"CAC", snap.CAC.Currency2()},
	}
	for r, row := range kpis {
		for c, v := range row {
			if err := setCell(f, "KPIs", c+1, r+1, v); err != nil {
				return err
			}
		}
	}

	if err := writeTable(f, "Platforms", platforms); err != nil {
		return err
	}
	if err := writeTable(f, "Campaigns", campaigns); err != nil {
		return err
	}
	return f.Write(w)
}

func writeTable(f *excelize.File, sheet string, t models.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	for c, name := range t.Columns {
		if err := setCell(f, sheet, c+1, 1, name); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			if err := setCell(f, sheet, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
