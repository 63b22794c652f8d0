package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/zulandar/changetrack/internal/config"
	"github.com/zulandar/changetrack/internal/db"
	"github.com/zulandar/changetrack/internal/schedule"
	"github.com/zulandar/changetrack/internal/tracker"
)

func newExportCmd() *cobra.Command {
	var (
		configPath string
		driver     string
		dsn        string
		every      string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy all records into the report database",
		Long: "Upserts every product, release, requester, change request and change item into " +
			"the SQL database configured under report (SQLite by default). With --schedule " +
			"(or report.schedule) the export repeats on a cron schedule until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, driver, dsn, every)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&driver, "driver", "", "override report.driver (sqlite or mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "override report.dsn")
	cmd.Flags().StringVar(&every, "schedule", "", "cron expression to export repeatedly, e.g. \"0 * * * *\" (overrides report.schedule)")
	return cmd
}

func runExport(cmd *cobra.Command, configPath, driver, dsn, every string) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	rc := t.Config().Report
	if driver != "" && driver != rc.Driver {
		rc.Driver = driver
		rc.DSN = ""
		if driver == config.DriverSQLite {
			rc.DSN = t.Config().Path("changetrack.db")
		}
	}
	if dsn != "" {
		rc.DSN = dsn
	}
	if every == "" {
		every = rc.Schedule
	}
	if every != "" {
		// reject a bad expression before touching the database
		if _, err := schedule.Parse(every); err != nil {
			return err
		}
	}

	gormDB, err := db.Connect(rc)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if every == "" {
		return exportOnce(out, gormDB, t)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(out, "Exporting on schedule %q. Press Ctrl-C to stop.\n", every)
	return schedule.Run(ctx, every, func(context.Context) error {
		return exportOnce(out, gormDB, t)
	})
}

func exportOnce(out io.Writer, gormDB *gorm.DB, t *tracker.Tracker) error {
	run, err := db.Export(gormDB, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Export %s complete\n", run.ID)
	fmt.Fprintf(out, "  products:        %d\n", run.Products)
	fmt.Fprintf(out, "  releases:        %d\n", run.Releases)
	fmt.Fprintf(out, "  requesters:      %d\n", run.Requesters)
	fmt.Fprintf(out, "  change requests: %d\n", run.Requests)
	fmt.Fprintf(out, "  change items:    %d\n", run.Items)
	return nil
}
