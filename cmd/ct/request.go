package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/tracker"
)

func newRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Change request commands",
	}

	cmd.AddCommand(newRequestCreateCmd())
	cmd.AddCommand(newRequestShowCmd())
	cmd.AddCommand(newRequestListCmd())
	return cmd
}

func newRequestCreateCmd() *cobra.Command {
	var (
		configPath string
		opts       tracker.RequestOpts
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a change request",
		Long:  "Records that an existing requester asked for a change to an existing product. The id is assigned automatically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestCreate(cmd, configPath, opts)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&opts.RequesterEmail, "requester", "", "requester email (required)")
	cmd.Flags().StringVar(&opts.ProductName, "product", "", "product name (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "request date, YYYY-MM-DD (required)")
	cmd.MarkFlagRequired("requester")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runRequestCreate(cmd *cobra.Command, configPath string, opts tracker.RequestOpts) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.CreateChangeRequest(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created change request %d\n", c.ID)
	return nil
}

func newRequestShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a change request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestShow(cmd, configPath, args[0])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runRequestShow(cmd *cobra.Command, configPath, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.ChangeRequest(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:           %d\n", c.ID)
	fmt.Fprintf(out, "Requested by: %s\n", c.RequestedBy)
	fmt.Fprintf(out, "Product:      %s\n", c.Product.Name)
	fmt.Fprintf(out, "Date:         %s\n", c.Date)
	return nil
}

func newRequestListCmd() *cobra.Command {
	var (
		configPath string
		product    string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List change requests",
		Long:  "Lists change requests in creation order, optionally only those against one product.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequestList(cmd, configPath, product, all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "filter by product")
	cmd.Flags().BoolVar(&all, "all", false, "list every page")
	return cmd
}

func runRequestList(cmd *cobra.Command, configPath, product string, all bool) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	pager, err := t.ChangeRequestPages(product, t.Config().Paging.ChangeItems)
	if err != nil {
		return err
	}
	return printPages(cmd.OutOrStdout(), pager, all, "ID\tPRODUCT\tREQUESTED BY\tDATE", func(w io.Writer, c models.ChangeRequest) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Product.Name, c.RequestedBy, c.Date)
	})
}
