package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/models"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Product management commands",
	}

	cmd.AddCommand(newProductCreateCmd())
	cmd.AddCommand(newProductListCmd())
	return cmd
}

func newProductCreateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new product",
		Long:  "Creates a product. Names are case-sensitive, unique, at most 10 characters and contain no spaces.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductCreate(cmd, configPath, args[0])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runProductCreate(cmd *cobra.Command, configPath, name string) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	p, err := t.CreateProduct(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created product %s\n", p.Name)
	return nil
}

func newProductListCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long:  "Lists products in creation order, one page at a time (paging.products).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProductList(cmd, configPath, all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&all, "all", false, "list every page")
	return cmd
}

func runProductList(cmd *cobra.Command, configPath string, all bool) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	pager, err := t.ProductPages()
	if err != nil {
		return err
	}
	return printPages(cmd.OutOrStdout(), pager, all, "NAME", func(w io.Writer, p models.Product) {
		fmt.Fprintln(w, p.Name)
	})
}
