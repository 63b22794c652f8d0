package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/db"
	"github.com/zulandar/changetrack/internal/report"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reports on change items",
	}

	cmd.AddCommand(newReportOutstandingCmd())
	cmd.AddCommand(newReportSummaryCmd())
	return cmd
}

func newReportOutstandingCmd() *cobra.Command {
	var (
		configPath string
		product    string
	)

	cmd := &cobra.Command{
		Use:   "outstanding",
		Short: "List open change items by priority",
		Long:  "Lists change items that are neither done nor cancelled, highest priority first. Reads the item file directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportOutstanding(cmd, configPath, product)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "only items of this product")
	return cmd
}

func runReportOutstanding(cmd *cobra.Command, configPath, product string) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	r, err := report.Outstanding(t, product)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(r.Items) == 0 {
		fmt.Fprintln(out, "No outstanding change items.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRI\tID\tPRODUCT\tSTATE\tDESCRIPTION\tRELEASE")
	for _, c := range r.Items {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			c.Priority, c.ID, c.Product.Name, c.State, truncate(c.Description, 40), releaseLabel(c.Release))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d outstanding:", len(r.Items))
	for p := len(r.ByPriority) - 1; p >= 1; p-- {
		if r.ByPriority[p] > 0 {
			fmt.Fprintf(out, " P%d=%d", p, r.ByPriority[p])
		}
	}
	fmt.Fprintln(out)
	return nil
}

func newReportSummaryCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count exported change items by product and state",
		Long:  "Summarizes the change items in the report database. Run `ct export` first to refresh it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportSummary(cmd, configPath)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runReportSummary(cmd *cobra.Command, configPath string) error {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}
	gormDB, err := db.Connect(cfg.Report)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	rows, err := report.StateSummary(gormDB)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No exported change items. Run `ct export` first.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tSTATE\tCOUNT")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.ProductName, r.State, r.Count)
	}
	w.Flush()

	if run, err := db.LastRun(gormDB); err == nil {
		fmt.Fprintf(out, "\nAs of export %s (%s)\n", run.ID, run.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
