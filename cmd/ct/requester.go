package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/requester"
)

func newRequesterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requester",
		Short: "Requester management commands",
	}

	cmd.AddCommand(newRequesterCreateCmd())
	cmd.AddCommand(newRequesterListCmd())
	return cmd
}

func newRequesterCreateCmd() *cobra.Command {
	var (
		configPath string
		opts       requester.CreateOpts
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a requester",
		Long:  "Creates a requester. Emails are unique; the department is left empty for non-employees.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequesterCreate(cmd, configPath, opts)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&opts.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "phone number, digits only (required)")
	cmd.Flags().StringVar(&opts.Department, "department", "", "department, for employees")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("phone")
	return cmd
}

func runRequesterCreate(cmd *cobra.Command, configPath string, opts requester.CreateOpts) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	r, err := t.CreateRequester(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created requester %s <%s>\n", r.Name, r.Email)
	return nil
}

func newRequesterListCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requesters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequesterList(cmd, configPath, all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&all, "all", false, "list every page")
	return cmd
}

func runRequesterList(cmd *cobra.Command, configPath string, all bool) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	pager, err := t.RequesterPages()
	if err != nil {
		return err
	}
	return printPages(cmd.OutOrStdout(), pager, all, "EMAIL\tNAME\tPHONE\tDEPARTMENT", func(w io.Writer, r models.Requester) {
		dept := r.Department
		if dept == "" {
			dept = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Email, r.Name, r.Phone, dept)
	})
}
