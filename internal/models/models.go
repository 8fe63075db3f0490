package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Placeholder is rendered wherever a metric is unavailable.
const Placeholder = "—"

// CampaignAll is the sentinel meaning "do not filter by campaign".
const CampaignAll = "All"

// Metric is a scalar KPI that may be unavailable. An absent source
// column yields an invalid Metric, never zero: zero would silently
// misstate the KPI. Invalid metrics marshal as JSON null.
type Metric struct {
	Value float64
	Valid bool
}

func MetricOf(v float64) Metric { return Metric{Value: v, Valid: true} }

func Unavailable() Metric { return Metric{} }

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric{}
		return nil
	}
	m.Valid = true
	return json.Unmarshal(b, &m.Value)
}

// Currency renders whole units with thousands separators, e.g. $12,340.
func (m Metric) Currency() string {
	if !m.Valid {
		return Placeholder
	}
	return "$" + group(fmt.Sprintf("%.0f", m.Value))
}

// Currency2 renders cents, e.g. $1,234.56. Used for CAC.
func (m Metric) Currency2() string {
	if !m.Valid {
		return Placeholder
	}
	s := fmt.Sprintf("%.2f", m.Value)
	dot := strings.IndexByte(s, '.')
	return "$" + group(s[:dot]) + s[dot:]
}

// Ratio renders two decimals without a unit. Used for ROAS.
func (m Metric) Ratio() string {
	if !m.Valid {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// Count renders a whole number with thousands separators.
func (m Metric) Count() string {
	if !m.Valid {
		return Placeholder
	}
	return group(fmt.Sprintf("%.0f", m.Value))
}

func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Snapshot carries the scalar KPIs for one filtered view of the data.
type Snapshot struct {
	Spend             Metric `json:"spend"`
	Impressions       Metric `json:"impressions"`
	Clicks            Metric `json:"clicks"`
	AttributedRevenue Metric `json:"attributed_revenue"`
	Orders            Metric `json:"orders"`
	TotalRevenue      Metric `json:"total_revenue"`
	GrossProfit       Metric `json:"gross_profit"`
	ROAS              Metric `json:"roas"`
	CAC               Metric `json:"cac"`
}

// Criteria narrows the normalized tables. Zero From/To means an open
// end. An empty Sources set means "no source filter": deselecting every
// platform shows everything, matching how the dashboard seeds the
// control with all platforms selected.
type Criteria struct {
	From     time.Time
	To       time.Time
	Sources  []string
	Campaign string
}

// FilterByCampaign reports whether the campaign clause applies.
func (c Criteria) FilterByCampaign() bool {
	return c.Campaign != "" && c.Campaign != CampaignAll
}

func (c Criteria) sourceSet() map[string]struct{} {
	if len(c.Sources) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(c.Sources))
	for _, s := range c.Sources {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}

// AllowsSource reports whether the source passes the platform filter.
func (c Criteria) AllowsSource(source string) bool {
	set := c.sourceSet()
	if set == nil {
		return true
	}
	_, ok := set[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// SourceStatus reports the load outcome of one expected file.
type SourceStatus struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Found bool   `json:"found"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
}

// Table is a column-ordered result ready for rendering: JSON cells are
// strings for text, numbers for sums, "2006-01-02" strings for dates and
// null for unavailable values.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
