package normalize

import (
	"strings"

	"github.com/angelcm/adboard-go/internal/frame"
)

// Column aliases, resolved once here so the rest of the pipeline sees
// exactly one name per concept. The canonical name wins when a file
// carries both spellings; the alias column is dropped.
var aliases = []struct{ canonical, alias string }{
	{"impressions", "impression"},
	{"clicks", "click"},
	{"total_revenue", "revenue"},
	{"gross_profit", "profit"},
}

// Table lowercases all column names, resolves aliases, and re-coerces
// the date column (idempotent: normalizing twice yields the same frame).
// The input is never mutated.
func Table(f *frame.Frame) *frame.Frame {
	if f == nil {
		return nil
	}
	out := f.Rename(strings.ToLower)
	for _, a := range aliases {
		if !out.HasColumn(a.alias) {
			continue
		}
		if out.HasColumn(a.canonical) {
			out = out.Drop(a.alias)
		} else {
			out = out.Rename(func(c string) string {
				if c == a.alias {
					return a.canonical
				}
				return c
			})
		}
	}
	if out.HasColumn("date") {
		out = out.WithDateColumn("date")
	}
	return out
}

// Marketing normalizes a platform file and tags every row with its
// source, the file name minus extension. The tag is set exactly once at
// ingestion; any stray "source" column in the input is overwritten.
func Marketing(f *frame.Frame, source string) *frame.Frame {
	if f == nil {
		return nil
	}
	return Table(f).WithColumn("source", frame.StringCell(source))
}

// Combine unions the normalized marketing frames: column set is the
// union, rows keep input order, and cells for columns a frame lacks stay
// null so an absent metric never reads as zero. Nil frames (missing
// files) are skipped; no inputs yield an empty frame.
func Combine(frames ...*frame.Frame) *frame.Frame {
	return frame.Concat(frames...)
}
