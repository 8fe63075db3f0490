package metrics

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/angelcm/adboard-go/internal/config"
	"github.com/angelcm/adboard-go/internal/frame"
	"github.com/angelcm/adboard-go/internal/loader"
	"github.com/angelcm/adboard-go/internal/models"
	"github.com/angelcm/adboard-go/internal/normalize"
)

// campaignColumns is the canonical column order of the campaign detail
// table; only columns actually present survive the projection.
var campaignColumns = []string{
	"date", "source", "campaign", "adset",
	"impressions", "clicks", "spend", "attributed_revenue",
}

// Service computes every dashboard aggregate from the normalized frames.
// Frames are immutable after construction, so each request can filter
// and aggregate without locks; every call recomputes from scratch.
type Service struct {
	log       *slog.Logger
	marketing *frame.Frame
	business  *frame.Frame
	statuses  []models.SourceStatus
}

// NewService loads and normalizes the configured files once. Missing or
// unreadable files degrade to an empty view and a status entry; nothing
// here is fatal.
func NewService(ld *loader.Loader, cfg config.Config, log *slog.Logger) *Service {
	s := &Service{log: log}

	var marketing []*frame.Frame
	for _, file := range cfg.PlatformFiles {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		f := s.loadOne(ld, filepath.Join(cfg.DataDir, file), name, file)
		marketing = append(marketing, normalize.Marketing(f, name))
	}
	s.marketing = normalize.Combine(marketing...)

	b := s.loadOne(ld, filepath.Join(cfg.DataDir, cfg.BusinessFile), "business", cfg.BusinessFile)
	s.business = normalize.Table(b)

	return s
}

func (s *Service) loadOne(ld *loader.Loader, path, name, file string) *frame.Frame {
	f, err := ld.Load(path)
	if err != nil {
		s.log.Error("load failed, treating source as absent",
			slog.String("file", file), slog.String("err", err.Error()))
		f = nil
	}
	st := models.SourceStatus{Name: name, File: file, Found: f != nil}
	if f != nil {
		st.Rows = f.NumRows()
		st.Cols = f.NumCols()
	}
	s.statuses = append(s.statuses, st)
	return f
}

func (s *Service) Statuses() []models.SourceStatus {
	return append([]models.SourceStatus(nil), s.statuses...)
}

// BusinessMissing reports the blocking condition for business KPIs.
func (s *Service) BusinessMissing() bool { return s.business == nil }

// Sources lists the platform identifiers present after combining.
func (s *Service) Sources() []string { return s.marketing.Distinct("source") }

// Campaigns lists distinct campaign values for the filter control.
func (s *Service) Campaigns() []string { return s.marketing.Distinct("campaign") }

// Span is the full observed date range: marketing first, business as
// fallback, today when there is no dated data at all.
func (s *Service) Span() (time.Time, time.Time) {
	if min, max, ok := s.marketing.MinMaxDate("date"); ok {
		return min, max
	}
	if s.business != nil {
		if min, max, ok := s.business.MinMaxDate("date"); ok {
			return min, max
		}
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return today, today
}

// Resolve fills malformed or missing date bounds with the full observed
// span, so a half-open or bogus range degrades instead of failing.
func (s *Service) Resolve(c models.Criteria) models.Criteria {
	if c.From.IsZero() || c.To.IsZero() || c.To.Before(c.From) {
		c.From, c.To = s.Span()
	}
	return c
}

// filterMarketing applies the date, source and campaign clauses. Each
// clause is skipped when its column is absent; the date clause excludes
// null-date rows unless keepNullDates is set (platform breakdown counts
// them, since source aggregation does not depend on date).
func (s *Service) filterMarketing(c models.Criteria, keepNullDates bool) *frame.Frame {
	f := s.marketing
	di, si, ci := f.Col("date"), f.Col("source"), f.Col("campaign")
	return f.Filter(func(i int) bool {
		row := f.Row(i)
		if di >= 0 {
			cell := row[di]
			if cell.HasDate {
				if cell.Date.Before(c.From) || cell.Date.After(c.To) {
					return false
				}
			} else if !keepNullDates {
				return false
			}
		}
		if si >= 0 && !c.AllowsSource(row[si].Raw) {
			return false
		}
		if c.FilterByCampaign() && ci >= 0 && row[ci].Raw != c.Campaign {
			return false
		}
		return true
	})
}

func (s *Service) filterBusiness(c models.Criteria) *frame.Frame {
	f := s.business
	if f == nil {
		return nil
	}
	di := f.Col("date")
	if di < 0 {
		return f
	}
	return f.Filter(func(i int) bool {
		cell := f.Row(i)[di]
		return cell.HasDate && !cell.Date.Before(c.From) && !cell.Date.After(c.To)
	})
}

// Snapshot computes the scalar KPIs for the filtered view. A column
// absent from its table yields an unavailable metric, never zero, and
// the ratio metrics require a positive, present denominator.
func (s *Service) Snapshot(c models.Criteria) models.Snapshot {
	c = s.Resolve(c)
	m := s.filterMarketing(c, false)
	b := s.filterBusiness(c)

	snap := models.Snapshot{
		Spend:             sum(m, "spend"),
		Impressions:       sum(m, "impressions"),
		Clicks:            sum(m, "clicks"),
		AttributedRevenue: sum(m, "attributed_revenue"),
		Orders:            sum(b, "orders"),
		TotalRevenue:      sum(b, "total_revenue"),
		GrossProfit:       sum(b, "gross_profit"),
	}
	if snap.AttributedRevenue.Valid && snap.Spend.Valid && snap.Spend.Value > 0 {
		snap.ROAS = models.MetricOf(snap.AttributedRevenue.Value / snap.Spend.Value)
	}
	if snap.Spend.Valid && snap.Orders.Valid && snap.Orders.Value > 0 {
		snap.CAC = models.MetricOf(snap.Spend.Value / snap.Orders.Value)
	}
	return snap
}

// MarketingSeries groups the filtered marketing rows by day, summing
// spend and attributed revenue, ascending by date.
func (s *Service) MarketingSeries(c models.Criteria) models.Table {
	c = s.Resolve(c)
	m := s.filterMarketing(c, false)
	if !m.HasColumn("date") {
		return models.Table{}
	}
	g := m.GroupSum("date", "spend", "attributed_revenue")
	return toTable(sortByDate(g, true))
}

// BusinessSeries groups the filtered business rows by day, summing
// whichever outcome columns are present.
func (s *Service) BusinessSeries(c models.Criteria) models.Table {
	c = s.Resolve(c)
	b := s.filterBusiness(c)
	if b == nil || !b.HasColumn("date") {
		return models.Table{}
	}
	g := b.GroupSum("date", "orders", "total_revenue", "gross_profit")
	return toTable(sortByDate(g, true))
}

// PlatformBreakdown groups by source, summing spend, clicks and
// attributed revenue. Rows whose date never parsed still count here.
func (s *Service) PlatformBreakdown(c models.Criteria) models.Table {
	c = s.Resolve(c)
	m := s.filterMarketing(c, true)
	if !m.HasColumn("source") {
		return models.Table{}
	}
	return toTable(m.GroupSum("source", "spend", "clicks", "attributed_revenue"))
}

// CampaignTable projects the filtered rows onto the canonical campaign
// columns, newest day first, ties kept in original row order.
func (s *Service) CampaignTable(c models.Criteria) models.Table {
	c = s.Resolve(c)
	m := s.filterMarketing(c, false).Project(campaignColumns)
	return toTable(sortByDate(m, false))
}

func sum(f *frame.Frame, col string) models.Metric {
	if f == nil {
		return models.Unavailable()
	}
	v, ok := f.Sum(col)
	if !ok {
		return models.Unavailable()
	}
	return models.MetricOf(v)
}

// sortByDate sorts stably on the date column, null dates last. Frames
// without a date column come back unchanged.
func sortByDate(f *frame.Frame, ascending bool) *frame.Frame {
	di := f.Col("date")
	if di < 0 {
		return f
	}
	return f.SortStable(func(i, j int) bool {
		a, b := f.Row(i)[di], f.Row(j)[di]
		if !a.HasDate || !b.HasDate {
			return a.HasDate && !b.HasDate
		}
		if ascending {
			return a.Date.Before(b.Date)
		}
		return a.Date.After(b.Date)
	})
}

func toTable(f *frame.Frame) models.Table {
	t := models.Table{Columns: f.Columns()}
	for i := 0; i < f.NumRows(); i++ {
		row := f.Row(i)
		cells := make([]any, len(row))
		for j, c := range row {
			switch {
			case c.HasDate:
				cells[j] = c.Date.Format("2006-01-02")
			case c.HasNum:
				cells[j] = c.Num
			case c.IsNull():
				cells[j] = nil
			default:
				cells[j] = c.Raw
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}
