package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return models.Clip(s, maxLen-3) + "..."
}

// parseID parses a change request or change item id.
func parseID(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid id %q: must be a non-negative integer", s)
	}
	return int32(n), nil
}

// parsePriority parses a priority without narrowing, so values outside int32
// are rejected rather than wrapped into range.
func parsePriority(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid priority %q: must be a number between %d and %d", s, models.MinPriority, models.MaxPriority)
	}
	p := int32(n)
	if err := models.ValidatePriority(p); err != nil {
		return 0, err
	}
	return p, nil
}

// releaseLabel formats the anticipated release of an item.
func releaseLabel(r models.ProductRelease) string {
	if r.IsZero() {
		return "-"
	}
	return r.ReleaseID + " (" + r.Date + ")"
}

// printItem writes the full details of a change item.
func printItem(out io.Writer, c *models.ChangeItem) {
	fmt.Fprintf(out, "ID:          %d\n", c.ID)
	fmt.Fprintf(out, "Product:     %s\n", c.Product.Name)
	fmt.Fprintf(out, "Description: %s\n", c.Description)
	fmt.Fprintf(out, "State:       %s\n", c.State)
	fmt.Fprintf(out, "Priority:    %d\n", c.Priority)
	fmt.Fprintf(out, "Reported:    %s\n", c.Reported)
	fmt.Fprintf(out, "Release:     %s\n", releaseLabel(c.Release))
}

// printPages writes pages from pager as a table. Without all, only the first
// page is written, followed by a hint when more records exist.
func printPages[T any](out io.Writer, pager *recstore.Pager[T], all bool, header string, row func(w io.Writer, rec T)) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	n := 0
	for {
		page, err := pager.Next()
		if err != nil {
			return err
		}
		for _, e := range page.Entries {
			row(w, e.Rec)
			n++
		}
		if !page.HasMore {
			break
		}
		if !all {
			w.Flush()
			fmt.Fprintln(out, "(more records; use --all to list everything)")
			return nil
		}
	}
	if n == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}
	return w.Flush()
}
