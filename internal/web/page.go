package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/angelcm/adboard-go/internal/models"
)

// Data feeds the dashboard template for one filtered view.
type Data struct {
	Statuses        []models.SourceStatus
	BusinessMissing bool
	KPIs            models.Snapshot
	From, To        string
	SourceOptions   []string
	CampaignOptions []string
	Selected        models.Criteria
	Series          models.Table
	Platforms       models.Table
	Campaigns       models.Table
}

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"cell":  formatCell,
	"spark": sparkline,
}).Parse(`<!doctype html><html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>adboard</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Inter,Arial;background:#0b1020;color:#e8ecff;margin:0;padding:20px}
.card{background:#111837;border:1px solid #203063;border-radius:14px;padding:16px;margin:12px 0}
h1{margin:0 0 10px 0} .muted{color:#9aa7cf} .error{color:#ff8a8a} table{width:100%;border-collapse:collapse}
th,td{border-bottom:1px solid #22305f;padding:8px;text-align:left}
.badge{display:inline-block;background:#1b2a59;padding:4px 10px;border-radius:8px;margin:0 6px 6px 0}
svg{max-width:100%}
input,select,button{background:#1b2a59;color:#e8ecff;border:1px solid #203063;border-radius:8px;padding:6px 10px}
button{background:#7aa2ff;color:#04102a;border:none;cursor:pointer}
</style>
</head><body>
<h1>Marketing Intelligence Dashboard</h1>

<div class="card">
  <h3>Data status</h3>
  {{range .Statuses}}
    {{if .Found}}<div class="muted">{{.File}}: {{.Rows}} rows, {{.Cols}} cols</div>
    {{else}}<div class="muted">{{.File}}: <b>NOT FOUND</b></div>{{end}}
  {{end}}
  {{if .BusinessMissing}}<p class="error">Business.csv not found: business KPIs cannot be computed.</p>{{end}}
</div>

<div class="card">
  <h3>Filters</h3>
  <form method="GET" action="/">
    <input type="date" name="from" value="{{.From}}">
    <input type="date" name="to" value="{{.To}}">
    <select name="campaign">
      <option>All</option>
      {{range .CampaignOptions}}<option {{if eq . $.Selected.Campaign}}selected{{end}}>{{.}}</option>{{end}}
    </select>
    <input type="text" name="platforms" placeholder="{{range $i, $s := .SourceOptions}}{{if $i}},{{end}}{{$s}}{{end}}">
    <button type="submit">Apply</button>
  </form>
</div>

<div class="card">
  <h3>Key metrics</h3>
  <div class="badge">Total Spend: {{.KPIs.Spend.Currency}}</div>
  <div class="badge">Attributed Revenue: {{.KPIs.AttributedRevenue.Currency}}</div>
  <div class="badge">ROAS: {{.KPIs.ROAS.Ratio}}</div>
  <div class="badge">CAC: {{.KPIs.CAC.Currency2}}</div>
  <div class="badge">Orders: {{.KPIs.Orders.Count}}</div>
  <div class="badge">Revenue: {{.KPIs.TotalRevenue.Currency}}</div>
  <div class="badge">Profit: {{.KPIs.GrossProfit.Currency}}</div>
</div>

<div class="card">
  <h3>Daily spend</h3>
  {{spark .Series}}
</div>

<div class="card">
  <h3>Platform breakdown</h3>
  {{if .Platforms.Rows}}
  <table><thead><tr>{{range .Platforms.Columns}}<th>{{.}}</th>{{end}}</tr></thead><tbody>
  {{range .Platforms.Rows}}<tr>{{range .}}<td>{{cell .}}</td>{{end}}</tr>{{end}}
  </tbody></table>
  {{else}}<p class="muted">No platform-level data.</p>{{end}}
</div>

<div class="card">
  <h3>Campaign-level detail</h3>
  {{if .Campaigns.Rows}}
  <table><thead><tr>{{range .Campaigns.Columns}}<th>{{.}}</th>{{end}}</tr></thead><tbody>
  {{range .Campaigns.Rows}}<tr>{{range .}}<td>{{cell .}}</td>{{end}}</tr>{{end}}
  </tbody></table>
  {{else}}<p class="muted">No campaign-level data to show.</p>{{end}}
</div>

<p class="muted"><a href="/api/campaigns/export" style="color:#7aa2ff">Download xlsx</a></p>
</body></html>
`))

// Render writes the dashboard page.
func Render(w io.Writer, d Data) error { return page.Execute(w, d) }

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return models.Placeholder
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%.0f", x)
		}
		return fmt.Sprintf("%.2f", x)
	default:
		return fmt.Sprint(v)
	}
}

// sparkline draws the spend column of the daily series as an inline svg.
func sparkline(t models.Table) template.HTML {
	col := -1
	for i, c := range t.Columns {
		if c == "spend" {
			col = i
		}
	}
	var vals []float64
	if col >= 0 {
		for _, row := range t.Rows {
			if v, ok := row[col].(float64); ok {
				vals = append(vals, v)
			}
		}
	}
	if len(vals) == 0 {
		return template.HTML("<p class='muted'>No marketing data available for time trends.</p>")
	}
	minV, maxV := vals[0], vals[0]
	for _, v := range vals {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	w, h := 600.0, 120.0
	step := w
	if len(vals) > 1 {
		step = w / float64(len(vals)-1)
	}
	var pts []string
	for i, v := range vals {
		px := float64(i) * step
		py := h - scale(v, minV, maxV, 8, h-8)
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", px, py))
	}
	svg := fmt.Sprintf(`<svg viewBox="0 0 %.0f %.0f"><path d="M %s" fill="none" stroke="#7aa2ff" stroke-width="2"/><line x1="0" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#22305f"/></svg>`,
		w, h, strings.Join(pts, " L "), h-0.5, w, h-0.5)
	return template.HTML(svg)
}

func scale(v, min, max, a, b float64) float64 {
	if max == min {
		return (a + b) / 2
	}
	return a + (v-min)*(b-a)/(max-min)
}
