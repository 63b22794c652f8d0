package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zulandar/changetrack/internal/models"
	"github.com/zulandar/changetrack/internal/recstore"
	"github.com/zulandar/changetrack/internal/report"
	"github.com/zulandar/changetrack/internal/requester"
	"github.com/zulandar/changetrack/internal/tracker"
)

// errInputClosed ends the menu when stdin runs out.
var errInputClosed = errors.New("input closed")

func newMenuCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long:  "Runs the interactive Create / Update / View menu on stdin and stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, configPath)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runMenu(cmd *cobra.Command, configPath string) error {
	t, err := openTracker(cmd, configPath)
	if err != nil {
		return err
	}
	defer t.Close()

	in := cmd.InOrStdin()
	// echo answers read from a pipe or file so the transcript stays readable
	echo := true
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		echo = false
	}
	m := &menu{
		t:    t,
		in:   bufio.NewScanner(in),
		out:  cmd.OutOrStdout(),
		echo: echo,
	}
	err = m.run()
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(m.out)
		return nil
	}
	return err
}

type menu struct {
	t    *tracker.Tracker
	in   *bufio.Scanner
	out  io.Writer
	echo bool
}

// ask prints prompt and reads one trimmed line.
func (m *menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	s := strings.TrimSpace(m.in.Text())
	if m.echo {
		fmt.Fprintln(m.out, s)
	}
	return s, nil
}

// askValid re-prompts with retry until check accepts the answer.
func (m *menu) askValid(prompt, retry string, check func(string) error) (string, error) {
	s, err := m.ask(prompt)
	for err == nil {
		cerr := check(s)
		if cerr == nil {
			return s, nil
		}
		s, err = m.ask(fmt.Sprintf("Not valid: %v. %s", cerr, retry))
	}
	return "", err
}

// yes asks a Y/N question.
func (m *menu) yes(prompt string) (bool, error) {
	s, err := m.ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, "y") || strings.EqualFold(s, "yes"), nil
}

// fail reports a failed operation. The menu carries on.
func (m *menu) fail(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

// repeat runs step until the user declines another round.
func (m *menu) repeat(step func() error, again string) error {
	for {
		if err := step(); err != nil {
			return err
		}
		ok, err := m.yes(again)
		if err != nil || !ok {
			return err
		}
	}
}

func (m *menu) run() error {
	for {
		choice, err := m.ask("\nMain Menu:\n1) Create\n2) Update\n3) View\n0) Exit\nEnter selection: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.createMenu()
		case "2":
			err = m.updateMenu()
		case "3":
			err = m.viewMenu()
		case "0":
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option, please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *menu) createMenu() error {
	choice, err := m.ask("\nCreate Menu:\n1) New Change Request\n2) New Product\n3) New Product Release\n" +
		"4) New Requester\n5) New Change Item\n0) Exit\nEnter selection: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return m.repeat(m.createRequest, "Would you like to add another change request?(Y/N): ")
	case "2":
		return m.repeat(m.createProduct, "Would you like to add another product?(Y/N): ")
	case "3":
		return m.repeat(m.createRelease, "Would you like to add another product release?(Y/N): ")
	case "4":
		return m.repeat(func() error { _, err := m.createRequester(); return err },
			"Would you like to add another requester?(Y/N): ")
	case "5":
		return m.repeat(m.createItem, "Would you like to add another change item?(Y/N): ")
	case "0":
		return nil
	default:
		fmt.Fprintln(m.out, "Invalid option, please try again.")
		return nil
	}
}

func (m *menu) updateMenu() error {
	choice, err := m.ask("\nUpdate Menu:\n1) Update ChangeItem State\n2) Update ChangeItem Priority\n0) Exit\nEnter selection: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return m.repeat(m.updateState, "Would you like to update another item state? (Y/N): ")
	case "2":
		return m.repeat(m.updatePriority, "Would you like to update another item priority? (Y/N): ")
	case "0":
		return nil
	default:
		fmt.Fprintln(m.out, "Invalid selection. Try again.")
		return nil
	}
}

func (m *menu) viewMenu() error {
	choice, err := m.ask("\nView Menu:\n1) View Specific ChangeItem\n2) View Reports\n0) Exit\nEnter selection: ")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return m.repeat(m.viewItem, "Would you like to view another ChangeItem(Y/N): ")
	case "2":
		return m.viewReport()
	case "0":
		return nil
	default:
		fmt.Fprintln(m.out, "Invalid option, please try again.")
		return nil
	}
}

// choose pages through pager, numbering entries from 1 across pages, and
// returns the chosen number (0 for exit) together with every entry shown.
func choose[T any](m *menu, title string, pager *recstore.Pager[T], label func(T) string) (int, []recstore.Entry[T], error) {
	var shown []recstore.Entry[T]
	for {
		page, err := pager.Next()
		if err != nil {
			return 0, nil, err
		}
		fmt.Fprintln(m.out, title)
		for _, e := range page.Entries {
			shown = append(shown, e)
			fmt.Fprintf(m.out, "%d) %s\n", len(shown), label(e.Rec))
		}
		if len(shown) == 0 {
			fmt.Fprintln(m.out, "Nothing to select.")
			return 0, nil, nil
		}
		if page.HasMore {
			fmt.Fprintln(m.out, "N) Next page")
		}
		fmt.Fprintln(m.out, "0) Exit")

		prompt := "Enter selection: "
		for {
			s, err := m.ask(prompt)
			if err != nil {
				return 0, nil, err
			}
			if page.HasMore && strings.EqualFold(s, "n") {
				break
			}
			if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= len(shown) {
				return n, shown, nil
			}
			if !page.HasMore && strings.EqualFold(s, "n") {
				prompt = "End of list, must choose an option: "
				continue
			}
			prompt = "Not a valid option. Try again: "
		}
	}
}

// selectProduct returns nil when the user exits.
func (m *menu) selectProduct() (*models.Product, error) {
	pager, err := m.t.ProductPages()
	if err != nil {
		return nil, err
	}
	n, _, err := choose(m, "Please select a Product", pager, func(p models.Product) string { return p.Name })
	if err != nil || n == 0 {
		return nil, err
	}
	// the product list is unfiltered, so selection n is record n-1
	return m.t.ProductAt(int64(n - 1))
}

// selectRequester returns nil when the user exits.
func (m *menu) selectRequester() (*models.Requester, error) {
	pager, err := m.t.RequesterPages()
	if err != nil {
		return nil, err
	}
	n, _, err := choose(m, "Please select a Requester", pager, func(r models.Requester) string {
		return fmt.Sprintf("%s <%s>", r.Name, r.Email)
	})
	if err != nil || n == 0 {
		return nil, err
	}
	return m.t.RequesterAt(int64(n - 1))
}

func checkDate(s string) error { return models.ValidateDate("date", s) }

func (m *menu) askDate(prompt string) (string, error) {
	return m.askValid(prompt, "Try Again (YYYY-MM-DD): ", checkDate)
}

func (m *menu) askID(prompt string) (int32, error) {
	s, err := m.askValid(prompt, "Enter a non-negative number: ", func(s string) error {
		_, err := parseID(s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return parseID(s)
}

func (m *menu) createProduct() error {
	name, err := m.askValid("Enter the product name (max 10 characters, no spaces): ", "Try again: ", func(s string) error {
		return models.Product{Name: s}.Validate()
	})
	if err != nil {
		return err
	}
	p, err := m.t.CreateProduct(name)
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "Product %s created.\n", p.Name)
	return nil
}

func (m *menu) createRelease() error {
	p, err := m.selectProduct()
	if err != nil || p == nil {
		return err
	}
	id, err := m.askValid("Enter the release ID (Format: X.X.X.X): ", "Try again (X.X.X.X): ", models.ValidateReleaseID)
	if err != nil {
		return err
	}
	date, err := m.askDate("Enter the date of the release (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	r, err := m.t.CreateRelease(p.Name, id, date)
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "Release %s of %s created.\n", r.ReleaseID, r.Product.Name)
	return nil
}

// createRequester collects the requester fields, re-asking only the field
// that failed validation. It returns nil if the requester was not created.
func (m *menu) createRequester() (*models.Requester, error) {
	var opts requester.CreateOpts
	fields := []struct {
		name   string
		prompt string
		dst    *string
	}{
		{"email", "Enter the email (max 24 characters): ", &opts.Email},
		{"name", "Enter the full name (max 30 characters): ", &opts.Name},
		{"phone", "Enter the phone number (digits only, max 11): ", &opts.Phone},
		{"department", "Enter the department (blank if not an employee): ", &opts.Department},
	}
	for _, f := range fields {
		s, err := m.ask(f.prompt)
		if err != nil {
			return nil, err
		}
		*f.dst = s
	}

	for {
		r, err := m.t.CreateRequester(opts)
		if err == nil {
			fmt.Fprintf(m.out, "Requester %s created.\n", r.Email)
			return r, nil
		}
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			m.fail(err)
			return nil, nil
		}
		retried := false
		for _, f := range fields {
			if f.name != verr.Field {
				continue
			}
			s, err := m.ask(fmt.Sprintf("Not a valid %s (%s). Try again: ", verr.Field, verr.Reason))
			if err != nil {
				return nil, err
			}
			*f.dst = s
			retried = true
		}
		if !retried {
			m.fail(err)
			return nil, nil
		}
	}
}

func (m *menu) createRequest() error {
	existing, err := m.yes("Create New Change Request:\nExisting Requester? (Y/N): ")
	if err != nil {
		return err
	}
	if !existing {
		for {
			r, err := m.createRequester()
			if err != nil {
				return err
			}
			if r != nil {
				break
			}
			again, err := m.yes("Try again? (Y/N): ")
			if err != nil || !again {
				return err
			}
		}
	}

	r, err := m.selectRequester()
	if err != nil || r == nil {
		return err
	}
	p, err := m.selectProduct()
	if err != nil || p == nil {
		return err
	}
	date, err := m.askDate("Please input the date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	c, err := m.t.CreateChangeRequest(tracker.RequestOpts{RequesterEmail: r.Email, ProductName: p.Name, Date: date})
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "Change request %d created.\n", c.ID)

	add, err := m.yes("Add a change item for this request? (Y/N): ")
	if err != nil || !add {
		return err
	}
	return m.createItemFor(p)
}

func (m *menu) createItem() error {
	p, err := m.selectProduct()
	if err != nil || p == nil {
		return err
	}
	return m.createItemFor(p)
}

const stateChoices = "1) Assessed\n2) In-Progress\n3) Done\n4) Cancelled\n"

func (m *menu) createItemFor(p *models.Product) error {
	desc, err := m.askValid(fmt.Sprintf("Enter a description of the ChangeItem (max %d characters): ", models.MaxDescriptionLen),
		"Try again: ", func(s string) error {
			if s == "" || len(s) > models.MaxDescriptionLen {
				return fmt.Errorf("must be 1 to %d characters", models.MaxDescriptionLen)
			}
			return nil
		})
	if err != nil {
		return err
	}
	prio, err := m.askPriority("Enter a priority (number between 1-5): ")
	if err != nil {
		return err
	}
	stateStr, err := m.askValid("Enter a status of the ChangeItem:\n"+stateChoices+"Enter selection: ",
		"Try again (1-4): ", func(s string) error {
			_, err := models.ParseState(s)
			return err
		})
	if err != nil {
		return err
	}
	state, _ := models.ParseState(stateStr)

	var releaseID string
	for {
		releaseID, err = m.askValid("Enter the anticipated release ID (Format: X.X.X.X, blank for none): ",
			"Try again (X.X.X.X): ", func(s string) error {
				if s == "" {
					return nil
				}
				return models.ValidateReleaseID(s)
			})
		if err != nil {
			return err
		}
		if releaseID == "" {
			break
		}
		if _, err := m.t.Release(p.Name, releaseID); err == nil {
			break
		}
		fmt.Fprintf(m.out, "%s has no release %s.\n", p.Name, releaseID)
	}
	date, err := m.askDate("Enter the date first reported (Format: YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	c, err := m.t.CreateChangeItem(tracker.ItemOpts{
		ProductName: p.Name,
		Description: desc,
		State:       state,
		Priority:    prio,
		Reported:    date,
		ReleaseID:   releaseID,
	})
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "ChangeItem %d created!\n", c.ID)
	return nil
}

func (m *menu) askPriority(prompt string) (int32, error) {
	s, err := m.askValid(prompt, "Try again (1-5): ", func(s string) error {
		_, err := parsePriority(s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return parsePriority(s)
}

func (m *menu) updateState() error {
	id, err := m.askID("Enter the ChangeId of the Change Item: ")
	if err != nil {
		return err
	}
	choice, err := m.askValid("What status would you like to change this Change Item to:\n"+stateChoices+"0) Exit\nEnter selection: ",
		"Try again (0-4): ", func(s string) error {
			if s == "0" {
				return nil
			}
			_, err := models.ParseState(s)
			return err
		})
	if err != nil || choice == "0" {
		return err
	}
	state, _ := models.ParseState(choice)
	c, err := m.t.UpdateStatus(id, state)
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "ChangeItem with ID %d has been updated.\n", c.ID)
	return nil
}

func (m *menu) updatePriority() error {
	id, err := m.askID("Enter the ChangeId of the Change Item: ")
	if err != nil {
		return err
	}
	prio, err := m.askPriority("Enter a new Priority (number between 1-5): ")
	if err != nil {
		return err
	}
	c, err := m.t.UpdatePriority(id, prio)
	if err != nil {
		m.fail(err)
		return nil
	}
	fmt.Fprintf(m.out, "ChangeItem with ID %d has been updated.\n", c.ID)
	return nil
}

func (m *menu) viewItem() error {
	p, err := m.selectProduct()
	if err != nil || p == nil {
		return err
	}
	pager, err := m.t.ChangeItemPages(p.Name)
	if err != nil {
		m.fail(err)
		return nil
	}
	n, shown, err := choose(m, "Please select a ChangeItem", pager, func(c models.ChangeItem) string {
		return truncate(c.Description, 60)
	})
	if err != nil || n == 0 {
		return err
	}
	c := shown[n-1].Rec
	printItem(m.out, &c)
	return nil
}

func (m *menu) viewReport() error {
	p, err := m.selectProduct()
	if err != nil || p == nil {
		return err
	}
	r, err := report.Outstanding(m.t, p.Name)
	if err != nil {
		m.fail(err)
		return nil
	}
	if len(r.Items) == 0 {
		fmt.Fprintf(m.out, "No outstanding change items for %s.\n", p.Name)
		return nil
	}
	fmt.Fprintf(m.out, "Outstanding change items for %s:\n", p.Name)
	for _, c := range r.Items {
		fmt.Fprintf(m.out, "  P%d  #%d  %-10s  %s\n", c.Priority, c.ID, c.State, truncate(c.Description, 50))
	}
	return nil
}
