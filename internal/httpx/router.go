package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelcm/adboard-go/internal/export"
	"github.com/angelcm/adboard-go/internal/frame"
	"github.com/angelcm/adboard-go/internal/metrics"
	"github.com/angelcm/adboard-go/internal/models"
	"github.com/angelcm/adboard-go/internal/utils"
	"github.com/angelcm/adboard-go/internal/web"
)

var validate = validator.New()

// filterQuery is the shape of the shared filter parameters. Anything
// that fails validation degrades to the full observed span rather than
// erroring: a partially filtered dashboard beats a 400.
type filterQuery struct {
	From      string `validate:"omitempty,datetime=2006-01-02"`
	To        string `validate:"omitempty,datetime=2006-01-02"`
	Platforms string
	Campaign  string
}

func NewRouter(log *slog.Logger, svc *metrics.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/api", func(api chi.Router) {
		api.Use(render.SetContentType(render.ContentTypeJSON))

		api.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]any{
				"sources":          svc.Statuses(),
				"business_missing": svc.BusinessMissing(),
			})
		})
		api.Get("/kpis", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.Snapshot(criteria(r)))
		})
		api.Get("/timeseries/marketing", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.MarketingSeries(criteria(r)))
		})
		api.Get("/timeseries/business", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.BusinessSeries(criteria(r)))
		})
		api.Get("/platforms", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.PlatformBreakdown(criteria(r)))
		})
		api.Get("/campaigns", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, svc.CampaignTable(criteria(r)))
		})
		api.Get("/campaigns/export", func(w http.ResponseWriter, r *http.Request) {
			c := criteria(r)
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="adboard.xlsx"`)
			err := export.Workbook(w, svc.Snapshot(c), svc.PlatformBreakdown(c), svc.CampaignTable(c))
			if err != nil {
				log.Error("xlsx export failed", slog.String("err", err.Error()))
			}
		})
	})

	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		c := svc.Resolve(criteria(r))
		d := web.Data{
			Statuses:        svc.Statuses(),
			BusinessMissing: svc.BusinessMissing(),
			KPIs:            svc.Snapshot(c),
			From:            c.From.Format("2006-01-02"),
			To:              c.To.Format("2006-01-02"),
			SourceOptions:   svc.Sources(),
			CampaignOptions: svc.Campaigns(),
			Selected:        c,
			Series:          svc.MarketingSeries(c),
			Platforms:       svc.PlatformBreakdown(c),
			Campaigns:       svc.CampaignTable(c),
		}
		if err := web.Render(w, d); err != nil {
			log.Error("render failed", slog.String("err", err.Error()))
		}
	})

	return mux
}

// criteria parses the filter query params. A malformed range comes back
// with zero bounds and the service substitutes the full data span.
func criteria(r *http.Request) models.Criteria {
	q := filterQuery{
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
		Platforms: r.URL.Query().Get("platforms"),
		Campaign:  r.URL.Query().Get("campaign"),
	}
	var c models.Criteria
	if err := validate.Struct(q); err == nil {
		if t, ok := frame.ParseDate(q.From); ok {
			c.From = t
		}
		if t, ok := frame.ParseDate(q.To); ok {
			c.To = t
		}
	}
	for _, p := range strings.Split(q.Platforms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			c.Sources = append(c.Sources, p)
		}
	}
	c.Campaign = strings.TrimSpace(q.Campaign)
	return c
}
