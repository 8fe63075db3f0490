package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/angelcm/adboard-go/internal/config"
	"github.com/angelcm/adboard-go/internal/frame"
	"github.com/angelcm/adboard-go/internal/loader"
	"github.com/angelcm/adboard-go/internal/metrics"
	"github.com/angelcm/adboard-go/internal/models"
)

var reportFlags struct {
	dir       string
	from      string
	to        string
	platforms string
	campaign  string
	limit     int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard as terminal tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if reportFlags.dir != "" {
			cfg.DataDir = reportFlags.dir
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := metrics.NewService(loader.New(logger), cfg, logger)

		var c models.Criteria
		if t, ok := frame.ParseDate(reportFlags.from); ok {
			c.From = t
		}
		if t, ok := frame.ParseDate(reportFlags.to); ok {
			c.To = t
		}
		for _, p := range strings.Split(reportFlags.platforms, ",") {
			if p = strings.TrimSpace(p); p != "" {
				c.Sources = append(c.Sources, p)
			}
		}
		c.Campaign = reportFlags.campaign
		c = svc.Resolve(c)

		printReport(cmd.OutOrStdout(), svc, c)
		return nil
	},
}

func printReport(w io.Writer, svc *metrics.Service, c models.Criteria) {
	header := color.New(color.FgCyan, color.Bold)

	header.Fprintln(w, "Data status")
	for _, st := range svc.Statuses() {
		if st.Found {
			fmt.Fprintf(w, "  %s: %d rows, %d cols\n", st.File, st.Rows, st.Cols)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", st.File, color.RedString("NOT FOUND"))
		}
	}
	if svc.BusinessMissing() {
		fmt.Fprintln(w, color.RedString("  business KPIs unavailable without the business file"))
	}

	snap := svc.Snapshot(c)
	header.Fprintf(w, "\nKey metrics (%s → %s)\n", c.From.Format("2006-01-02"), c.To.Format("2006-01-02"))
	kpis := tablewriter.NewWriter(w)
	kpis.SetHeader([]string{"Metric", "Value"})
	kpis.SetBorder(false)
	kpis.SetAlignment(tablewriter.ALIGN_LEFT)
	kpis.Append([]string{"Total Spend", snap.Spend.Currency()})
	kpis.Append([]string{"Impressions", snap.Impressions.Count()})
	kpis.Append([]string{"Clicks", snap.Clicks.Count()})
	kpis.Append([]string{"Attributed Revenue", snap.AttributedRevenue.Currency()})
	kpis.Append([]string{"Orders", snap.Orders.Count()})
	kpis.Append([]string{"Total Revenue", snap.TotalRevenue.Currency()})
	kpis.Append([]string{"Gross Profit", snap.GrossProfit.Currency()})
	kpis.Append([]string{"ROAS", snap.ROAS.Ratio()})
	kpis.Append([]string{"CAC", snap.CAC.Currency2()})
	kpis.Render()

	header.Fprintln(w, "\nPlatform breakdown")
	printTable(w, svc.PlatformBreakdown(c), 0)

	header.Fprintln(w, "\nCampaign-level detail")
	printTable(w, svc.CampaignTable(c), reportFlags.limit)
}

func printTable(w io.Writer, t models.Table, limit int) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetBorder(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	rows := t.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		tw.Append(cells)
	}
	tw.Render()
	if limit > 0 && len(t.Rows) > limit {
		fmt.Fprintf(w, "  … %d more rows\n", len(t.Rows)-limit)
	}
}

func cellString(v any) string {
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

func init() {
	reportCmd.Flags().StringVar(&reportFlags.dir, "dir", "", "directory holding the CSV files (default: config)")
	reportCmd.Flags().StringVar(&reportFlags.from, "from", "", "range start, YYYY-MM-DD (default: full span)")
	reportCmd.Flags().StringVar(&reportFlags.to, "to", "", "range end, YYYY-MM-DD (default: full span)")
	reportCmd.Flags().StringVar(&reportFlags.platforms, "platforms", "", "comma-separated platform filter")
	reportCmd.Flags().StringVar(&reportFlags.campaign, "campaign", models.CampaignAll, "exact campaign filter")
	reportCmd.Flags().IntVar(&reportFlags.limit, "limit", 25, "max campaign detail rows to print (0 = all)")
	rootCmd.AddCommand(reportCmd)
}
