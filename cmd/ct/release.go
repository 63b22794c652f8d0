package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/models"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Product release commands",
	}

	cmd.AddCommand(newReleaseCreateCmd())
	cmd.AddCommand(newReleaseListCmd())
	return cmd
}

func newReleaseCreateCmd() *cobra.Command {
	var (
		configPath string
		product    string
		releaseID  string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product release",
		Long:  "Creates a release of an existing product. Release ids have the form X.X.X.X and are unique per product.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReleaseCreate(cmd, configPath, product, releaseID, date)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "product name (required)")
	cmd.Flags().StringVar(&releaseID, "id", "", "release id, X.X.X.X (required)")
	cmd.Flags().StringVar(&date, "date", "", "release date, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runReleaseCreate(cmd *cobra.Command, configPath, product, releaseID, date string) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	r, err := t.CreateRelease(product, releaseID, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created release %s of %s (%s)\n", r.ReleaseID, r.Product.Name, r.Date)
	return nil
}

func newReleaseListCmd() *cobra.Command {
	var (
		configPath string
		product    string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the releases of a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReleaseList(cmd, configPath, product, all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "product name (required)")
	cmd.Flags().BoolVar(&all, "all", false, "list every page")
	cmd.MarkFlagRequired("product")
	return cmd
}

func runReleaseList(cmd *cobra.Command, configPath, product string, all bool) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	if _, err := t.Product(product); err != nil {
		return err
	}
	pager, err := t.ReleasePages(product, t.Config().Paging.ChangeItems)
	if err != nil {
		return err
	}
	return printPages(cmd.OutOrStdout(), pager, all, "RELEASE\tDATE", func(w io.Writer, r models.ProductRelease) {
		fmt.Fprintf(w, "%s\t%s\n", r.ReleaseID, r.Date)
	})
}
