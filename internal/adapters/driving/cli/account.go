package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage signed-in Google accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List signed-in accounts",
	RunE:  runAccountList,
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Sign in with another Google account",
	Long: `Open the Google account picker and add the chosen account.

The new account becomes the selected account. Choosing an account that is
already in the list leaves the list and the selection unchanged.`,
	RunE: runAccountAdd,
}

var accountSelectCmd = &cobra.Command{
	Use:   "select <email>",
	Short: "Select the account used for Google Ads requests",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountSelect,
}

var accountCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the selected account",
	RunE:  runAccountCurrent,
}

func init() {
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountSelectCmd)
	accountCmd.AddCommand(accountCurrentCmd)
	rootCmd.AddCommand(accountCmd)
}

func runAccountList(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	snap := manager.Snapshot()
	if len(snap.Accounts) == 0 {
		cmd.Println("No accounts. Run 'mcc account add' to sign in.")
		return nil
	}
	printAccounts(cmd, snap.Accounts, snap.Selected)
	return nil
}

func runAccountAdd(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	before := len(manager.Snapshot().Accounts)
	acc, err := manager.AddAccount(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to add account: %w", err)
	}

	if len(manager.Snapshot().Accounts) == before {
		cmd.Printf("Account %s is already signed in\n", acc.Email)
		return nil
	}
	cmd.Printf("Added and selected %s\n", acc.Label())
	warnRefresh(cmd, manager)
	return nil
}

func runAccountSelect(cmd *cobra.Command, args []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	acc, err := manager.SelectAccount(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to select account: %w", err)
	}
	cmd.Printf("Selected %s\n", acc.Label())
	warnRefresh(cmd, manager)
	return nil
}

func runAccountCurrent(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	if sel := manager.Snapshot().Selected; sel != nil {
		cmd.Println(sel.Label())
		return nil
	}
	cmd.Println("No account selected")
	return nil
}

func printAccounts(cmd *cobra.Command, accounts []domain.Account, selected *domain.Account) {
	for _, acc := range accounts {
		marker := " "
		if selected != nil && selected.Email == acc.Email {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, acc.Label())
	}
}
