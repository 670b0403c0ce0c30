package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/partsdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/partsdash-backend/internal/config"
	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/partsdash-backend/internal/usecase/table"
)

// newDashboard wires a dashboard service on the configured database
func newDashboard(db *postgres.DB) (*dashboard.DashboardService, error) {
	panels, err := config.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return dashboard.NewDashboardService(
		postgres.NewSalesDataRepository(db),
		postgres.NewRepairOrderRepository(db),
		postgres.NewShipmentRepository(db),
		panels,
	)
}

// panelListing is the table the panels command prints
var panelListing = table.MustNewRecordTable("id", "category", "kind", "title", "export")

// panels: list the panel catalog.
func panelsCmd() *cobra.Command {
	var (
		category string
		view     domain.ViewState
		dir      string
	)

	cmd := &cobra.Command{
		Use:   "panels",
		Short: "List dashboard panels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panels, err := config.LoadCatalog()
			if err != nil {
				return err
			}

			records := make([]table.Record, 0, len(panels))
			for _, p := range panels {
				if category != "" && p.Category != category {
					continue
				}
				records = append(records, table.Record{
					"id":       domain.Text(p.ID),
					"category": domain.Text(p.Category),
					"kind":     domain.Text(string(p.Kind)),
					"title":    domain.Text(p.Title),
					"export":   optionalText(p.ExportFilename),
				})
			}

			view.Direction = domain.SortDirection(strings.ToLower(dir))
			records, err = panelListing.Apply(records, view)
			if err != nil {
				return err
			}

			columns := panelListing.Columns()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, col := range columns {
				fmt.Fprint(w, strings.ToUpper(col.Header))
				fmt.Fprint(w, separator(i, len(columns)))
			}
			for _, r := range records {
				for i, col := range columns {
					v := col.Accessor(r)
					if v.IsMissing() {
						fmt.Fprint(w, "-")
					} else {
						fmt.Fprint(w, v.String())
					}
					fmt.Fprint(w, separator(i, len(columns)))
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list panels in this category")
	cmd.Flags().StringVarP(&view.Query, "query", "q", "", "case-insensitive search text")
	cmd.Flags().StringVar(&view.SortKey, "sort", "", "column to sort by: id, category, kind, title or export")
	cmd.Flags().StringVar(&dir, "dir", "", "sort direction, asc or desc")
	return cmd
}

func optionalText(s string) domain.Value {
	if s == "" {
		return domain.Missing()
	}
	return domain.Text(s)
}

func separator(i, n int) string {
	if i == n-1 {
		return "\n"
	}
	return "\t"
}

// export <panel>: write a panel as CSV.
func exportCmd() *cobra.Command {
	var (
		params  dashboard.QueryParams
		minDays int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export <panel>",
		Short: "Export a panel as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-days") {
				params.MinDays = &minDays
			}
			req, err := params.Request(cfg.StuckPackingDays)
			if err != nil {
				return err
			}

			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := newDashboard(db)
			if err != nil {
				return err
			}

			doc, err := svc.Export(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(doc.Body)
				return err
			}
			if output == "" {
				output = doc.Filename
			}
			if err := os.WriteFile(output, doc.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			log.Info("panel exported", zap.String("panel", args[0]), zap.String("file", output), zap.Int("bytes", len(doc.Body)))
			return nil
		},
	}

	cmd.Flags().StringVar(&params.From, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&params.To, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "column key to sort by (default from the panel)")
	cmd.Flags().StringVar(&params.Dir, "dir", "", "sort direction, asc or desc")
	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "case-insensitive search text")
	cmd.Flags().StringSliceVar(&params.Fields, "fields", nil, "columns to search (default all searchable)")
	cmd.Flags().StringVar(&params.Period, "period", "", "trend period: daily, weekly or monthly")
	cmd.Flags().IntVar(&minDays, "min-days", 0, "minimum days in packing (default STUCK_PACKING_DAYS)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default the panel's export file name)")
	return cmd
}
