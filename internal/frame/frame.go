package frame

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Cell is one value in a Frame. A zero Cell is null: no raw text, no
// parsed number, no parsed date.
type Cell struct {
	Raw     string
	Num     float64
	Date    time.Time
	HasNum  bool
	HasDate bool
}

func (c Cell) IsNull() bool { return c.Raw == "" && !c.HasNum && !c.HasDate }

// NumCell builds a numeric cell with the canonical raw rendering.
func NumCell(v float64) Cell {
	return Cell{Raw: strconv.FormatFloat(v, 'f', -1, 64), Num: v, HasNum: true}
}

// DateCell builds a day-truncated date cell.
func DateCell(t time.Time) Cell {
	d := day(t)
	return Cell{Raw: d.Format("2006-01-02"), Date: d, HasDate: true}
}

// StringCell builds a text-only cell.
func StringCell(s string) Cell { return Cell{Raw: s} }

// Frame is an immutable table: ordered column names plus rows of cells.
// Every transform returns a new Frame; row slices may be shared between
// frames since cells are never written after construction.
type Frame struct {
	cols []string
	rows [][]Cell
}

func New(cols []string) *Frame {
	return &Frame{cols: append([]string(nil), cols...)}
}

func (f *Frame) NumRows() int { return len(f.rows) }
func (f *Frame) NumCols() int { return len(f.cols) }

func (f *Frame) Columns() []string { return append([]string(nil), f.cols...) }

// Col returns the index of the named column, -1 when absent.
func (f *Frame) Col(name string) int {
	for i, c := range f.cols {
		if c == name {
			return i
		}
	}
	return -1
}

func (f *Frame) HasColumn(name string) bool { return f.Col(name) >= 0 }

func (f *Frame) Row(i int) []Cell { return f.rows[i] }

// Value returns the cell at row i in the named column; a null cell when
// the column is absent.
func (f *Frame) Value(i int, name string) Cell {
	c := f.Col(name)
	if c < 0 {
		return Cell{}
	}
	return f.rows[i][c]
}

func (f *Frame) appendRow(cells []Cell) { f.rows = append(f.rows, cells) }

// Rename maps every column name through fn, collapsing duplicates is not
// attempted here; normalization handles aliases explicitly.
func (f *Frame) Rename(fn func(string) string) *Frame {
	out := &Frame{cols: make([]string, len(f.cols)), rows: f.rows}
	for i, c := range f.cols {
		out.cols[i] = fn(c)
	}
	return out
}

// Drop removes the named columns, keeping row order.
func (f *Frame) Drop(names ...string) *Frame {
	dropped := map[string]struct{}{}
	for _, n := range names {
		dropped[n] = struct{}{}
	}
	var keep []string
	for _, c := range f.cols {
		if _, ok := dropped[c]; !ok {
			keep = append(keep, c)
		}
	}
	return f.Project(keep)
}

// Project rebuilds the frame with only the requested columns that exist,
// in the requested order.
func (f *Frame) Project(cols []string) *Frame {
	var idx []int
	out := &Frame{}
	for _, c := range cols {
		if i := f.Col(c); i >= 0 {
			idx = append(idx, i)
			out.cols = append(out.cols, c)
		}
	}
	out.rows = make([][]Cell, len(f.rows))
	for r, row := range f.rows {
		cells := make([]Cell, len(idx))
		for j, i := range idx {
			cells[j] = row[i]
		}
		out.rows[r] = cells
	}
	return out
}

// WithColumn returns a copy with an extra column holding the same cell in
// every row. An existing column of that name is replaced.
func (f *Frame) WithColumn(name string, cell Cell) *Frame {
	if i := f.Col(name); i >= 0 {
		out := &Frame{cols: f.Columns(), rows: make([][]Cell, len(f.rows))}
		for r, row := range f.rows {
			cells := append([]Cell(nil), row...)
			cells[i] = cell
			out.rows[r] = cells
		}
		return out
	}
	out := &Frame{cols: append(f.Columns(), name), rows: make([][]Cell, len(f.rows))}
	for r, row := range f.rows {
		cells := make([]Cell, len(row)+1)
		copy(cells, row)
		cells[len(row)] = cell
		out.rows[r] = cells
	}
	return out
}

// WithDateColumn re-parses the named column as calendar dates. Cells that
// do not parse become null dates but keep their raw text. Parsing an
// already-parsed column is a no-op, so the coercion is idempotent.
func (f *Frame) WithDateColumn(name string) *Frame {
	i := f.Col(name)
	if i < 0 {
		return f
	}
	out := &Frame{cols: f.Columns(), rows: make([][]Cell, len(f.rows))}
	for r, row := range f.rows {
		cells := append([]Cell(nil), row...)
		c := cells[i]
		if !c.HasDate {
			if t, ok := ParseDate(c.Raw); ok {
				c.Date = t
				c.HasDate = true
				c.HasNum = false
			} else {
				c.HasNum = false
			}
			cells[i] = c
		}
		out.rows[r] = cells
	}
	return out
}

// Filter returns the rows for which keep reports true, in order. Row
// slices are shared with the receiver.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	out := &Frame{cols: f.Columns()}
	for i := range f.rows {
		if keep(i) {
			out.rows = append(out.rows, f.rows[i])
		}
	}
	return out
}

// SortStable returns a stably sorted copy; less compares row indices of
// the receiver.
func (f *Frame) SortStable(less func(i, j int) bool) *Frame {
	idx := make([]int, len(f.rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	out := &Frame{cols: f.Columns(), rows: make([][]Cell, len(f.rows))}
	for p, i := range idx {
		out.rows[p] = f.rows[i]
	}
	return out
}

// Sum adds the numeric cells of the named column. The second return is
// false when the column does not exist at all; a present column with no
// numeric cells sums to zero.
func (f *Frame) Sum(name string) (float64, bool) {
	i := f.Col(name)
	if i < 0 {
		return 0, false
	}
	var total float64
	for _, row := range f.rows {
		if row[i].HasNum {
			total += row[i].Num
		}
	}
	return total, true
}

// GroupSum groups rows by the key column and sums each of the value
// columns that exist. Groups appear in first-seen row order. A group with
// no numeric cells in a value column gets a null cell there, not zero.
func (f *Frame) GroupSum(key string, vals ...string) *Frame {
	ki := f.Col(key)
	if ki < 0 {
		return New([]string{})
	}
	var present []string
	var vidx []int
	for _, v := range vals {
		if i := f.Col(v); i >= 0 {
			present = append(present, v)
			vidx = append(vidx, i)
		}
	}
	type acc struct {
		rep  Cell
		sums []float64
		n    []int
	}
	order := []string{}
	groups := map[string]*acc{}
	for _, row := range f.rows {
		k := groupKey(row[ki])
		g, ok := groups[k]
		if !ok {
			g = &acc{rep: row[ki], sums: make([]float64, len(vidx)), n: make([]int, len(vidx))}
			groups[k] = g
			order = append(order, k)
		}
		for j, i := range vidx {
			if row[i].HasNum {
				g.sums[j] += row[i].Num
				g.n[j]++
			}
		}
	}
	out := New(append([]string{key}, present...))
	for _, k := range order {
		g := groups[k]
		cells := make([]Cell, 1+len(vidx))
		cells[0] = g.rep
		for j := range vidx {
			if g.n[j] > 0 {
				cells[1+j] = NumCell(g.sums[j])
			}
		}
		out.appendRow(cells)
	}
	return out
}

// Distinct lists the non-null raw values of the named column in
// first-seen order.
func (f *Frame) Distinct(name string) []string {
	i := f.Col(name)
	if i < 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, row := range f.rows {
		if row[i].IsNull() {
			continue
		}
		if _, ok := seen[row[i].Raw]; ok {
			continue
		}
		seen[row[i].Raw] = struct{}{}
		out = append(out, row[i].Raw)
	}
	return out
}

// MinMaxDate scans the named column for its date span. ok is false when
// the column is absent or holds no parsed dates.
func (f *Frame) MinMaxDate(name string) (min, max time.Time, ok bool) {
	i := f.Col(name)
	if i < 0 {
		return
	}
	for _, row := range f.rows {
		if !row[i].HasDate {
			continue
		}
		d := row[i].Date
		if !ok || d.Before(min) {
			min = d
		}
		if !ok || d.After(max) {
			max = d
		}
		ok = true
	}
	return
}

// Concat unions frames row-wise: the column set is the union in
// first-seen order, cells for columns a frame lacks are null, and rows
// keep input order. No inputs yield an empty frame.
func Concat(frames ...*Frame) *Frame {
	out := &Frame{}
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, c := range f.cols {
			if out.Col(c) < 0 {
				out.cols = append(out.cols, c)
			}
		}
	}
	for _, f := range frames {
		if f == nil {
			continue
		}
		idx := make([]int, len(out.cols))
		for j, c := range out.cols {
			idx[j] = f.Col(c)
		}
		for _, row := range f.rows {
			cells := make([]Cell, len(out.cols))
			for j, i := range idx {
				if i >= 0 {
					cells[j] = row[i]
				}
			}
			out.appendRow(cells)
		}
	}
	return out
}

func groupKey(c Cell) string {
	if c.HasDate {
		return "d|" + c.Date.Format("2006-01-02")
	}
	if c.IsNull() {
		return "\x00null"
	}
	return "s|" + c.Raw
}

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006", "2006.01.02",
	"2006-01-02 15:04:05", time.RFC3339,
}

// ParseDate tries the layouts the source files are known to use and
// truncates to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t), true
		}
	}
	return time.Time{}, false
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
