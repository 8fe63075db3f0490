package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses a delimited table with a header row. Column names keep
// their original spelling (normalization happens later). Each cell keeps
// its trimmed raw text and, when it parses as a number after stripping
// thousands separators, the numeric value. Short rows are padded with
// null cells rather than rejected.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}
	f := New(header)
	for _, rec := range records[1:] {
		cells := make([]Cell, len(header))
		for i := range header {
			if i < len(rec) {
				cells[i] = parseCell(rec[i])
			}
		}
		f.appendRow(cells)
	}
	return f, nil
}

func parseCell(s string) Cell {
	s = strings.TrimSpace(s)
	c := Cell{Raw: s}
	if s == "" {
		return c
	}
	num := strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseFloat(num, 64); err == nil {
		c.Num = v
		c.HasNum = true
	}
	return c
}
