package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "List and create Google Ads customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers reachable from the selected account",
	Long: `Refresh and print the customer hierarchy of the selected account.

Examples:
  mcc customers list
  mcc customers list --search acme --sort level --desc`,
	RunE: runCustomersList,
}

var customersCreateChildCmd = &cobra.Command{
	Use:   "create-child [parent-id]",
	Short: "Create a child account under a manager account",
	Long: `Create a child account under the given manager customer id.

Without a parent id the account is created under the root accessible
customer. The name defaults to "MCC for <account email>"; currency and time
zone come from 'mcc settings defaults'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCustomersCreateChild,
}

func init() {
	customersListCmd.Flags().StringP("search", "s", "", "filter by name or id (case-insensitive)")
	customersListCmd.Flags().String("sort", string(domain.SortFieldName), "sort column: id, name, type or level")
	customersListCmd.Flags().Bool("desc", false, "sort descending")

	customersCreateChildCmd.Flags().StringP("name", "n", "", "descriptive name of the new account")

	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersCreateChildCmd)
	rootCmd.AddCommand(customersCmd)
}

func runCustomersList(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search")
	sortFlag, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")

	field, err := domain.ParseSortField(sortFlag)
	if err != nil {
		return err
	}

	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	customers, err := manager.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	if newCustomerView != nil {
		view := newCustomerView()
		view.SetCustomers(customers)
		view.SetFilter(search)
		dir := domain.SortAsc
		if desc {
			dir = domain.SortDesc
		}
		view.SortBy(field, dir)
		customers = view.Visible()
	}

	if len(customers) == 0 {
		cmd.Println("No customers found")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), customerTable(customers))
	cmd.Printf("%d customers\n", len(customers))
	return nil
}

func runCustomersCreateChild(cmd *cobra.Command, args []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	var parentID string
	if len(args) == 1 {
		parentID = args[0]
	}
	name, _ := cmd.Flags().GetString("name")

	created, err := manager.CreateChildMCC(cmd.Context(), parentID, name)
	if err != nil {
		return fmt.Errorf("failed to create child account: %w", err)
	}

	cmd.Printf("Created %s (%s)\n", created.Name, created.ID)
	warnRefresh(cmd, manager)
	return nil
}

func customerTable(customers []domain.Customer) string {
	rows := make([][]string, len(customers))
	for i, c := range customers {
		level := "-"
		if c.Level != nil {
			level = strconv.Itoa(*c.Level)
		}
		rows[i] = []string{c.ID, c.Name, string(c.Type), level}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "TYPE", "LEVEL").
		Rows(rows...).
		String()
}
