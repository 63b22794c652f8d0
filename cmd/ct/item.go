package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/tracker"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Change item commands",
	}

	cmd.AddCommand(newItemCreateCmd())
	cmd.AddCommand(newItemShowCmd())
	cmd.AddCommand(newItemListCmd())
	cmd.AddCommand(newItemStatusCmd())
	cmd.AddCommand(newItemPriorityCmd())
	return cmd
}

func newItemCreateCmd() *cobra.Command {
	var (
		configPath  string
		product     string
		description string
		state       string
		priority    int32
		date        string
		releaseID   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a change item",
		Long:  "Creates a change item against an existing product. The id is assigned automatically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := models.ParseState(state)
			if err != nil {
				return err
			}
			return runItemCreate(cmd, configPath, tracker.ItemOpts{
				ProductName: product,
				Description: description,
				State:       st,
				Priority:    priority,
				Reported:    date,
				ReleaseID:   releaseID,
			})
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "product name (required)")
	cmd.Flags().StringVar(&description, "description", "", "description, at most 149 characters (required)")
	cmd.Flags().StringVar(&state, "state", "assessed", "state (assessed, in-progress, done, cancelled)")
	cmd.Flags().Int32Var(&priority, "priority", 3, "priority (1-5)")
	cmd.Flags().StringVar(&date, "date", "", "first reported date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&releaseID, "release", "", "anticipated release id of the product")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("date")
	return cmd
}

func runItemCreate(cmd *cobra.Command, configPath string, opts tracker.ItemOpts) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.CreateChangeItem(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created change item %d\n", c.ID)
	return nil
}

func newItemShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show change item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemShow(cmd, configPath, args[0])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runItemShow(cmd *cobra.Command, configPath, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.ChangeItem(id)
	if err != nil {
		return err
	}
	printItem(cmd.OutOrStdout(), c)
	return nil
}

func newItemListCmd() *cobra.Command {
	var (
		configPath string
		product    string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the change items of a product",
		Long:  "Lists change items in creation order, one page at a time (paging.change_items).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemList(cmd, configPath, product, all)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&product, "product", "", "product name (required)")
	cmd.Flags().BoolVar(&all, "all", false, "list every page")
	cmd.MarkFlagRequired("product")
	return cmd
}

func runItemList(cmd *cobra.Command, configPath, product string, all bool) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	if _, err := t.Product(product); err != nil {
		return err
	}
	pager, err := t.ChangeItemPages(product)
	if err != nil {
		return err
	}
	return printPages(cmd.OutOrStdout(), pager, all, "ID\tDESCRIPTION\tSTATE\tPRI\tREPORTED\tRELEASE", func(w io.Writer, c models.ChangeItem) {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, truncate(c.Description, 40), c.State, c.Priority, c.Reported, releaseLabel(c.Release))
	})
}

func newItemStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <id> <state>",
		Short: "Change the state of a change item",
		Long:  "Sets the state of a change item to assessed, in-progress, done or cancelled (or 1-4).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemStatus(cmd, configPath, args[0], args[1])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runItemStatus(cmd *cobra.Command, configPath, idArg, stateArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	state, err := models.ParseState(stateArg)
	if err != nil {
		return err
	}
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.UpdateStatus(id, state)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ChangeItem with ID %d has been updated: state %s\n", c.ID, c.State)
	return nil
}

func newItemPriorityCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "priority <id> <1-5>",
		Short: "Change the priority of a change item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemPriority(cmd, configPath, args[0], args[1])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runItemPriority(cmd *cobra.Command, configPath, idArg, priorityArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		return err
	}
	p, err := parsePriority(priorityArg)
	if err != nil {
		return err
	}
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	c, err := t.UpdatePriority(id, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ChangeItem with ID %d has been updated: priority %d\n", c.ID, c.Priority)
	return nil
}
