package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Google Ads developer token",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Validate and store the developer token",
	Long: `Validate and store the Google Ads developer token.

Without an argument the token is read from the terminal without echo.
A valid token refreshes the customer list of the selected account.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenSet,
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored developer token (masked)",
	RunE:  runTokenShow,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored developer token",
	RunE:  runTokenClear,
}

func init() {
	tokenShowCmd.Flags().Bool("reveal", false, "print the token unmasked")

	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenShowCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		token = promptSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Developer token: ")
	}

	validation, err := manager.SetDeveloperToken(cmd.Context(), token)
	if err != nil {
		if !validation.Valid {
			return err
		}
		return fmt.Errorf("failed to save developer token: %w", err)
	}

	cmd.Println("Developer token saved")
	warnRefresh(cmd, manager)
	return nil
}

func runTokenShow(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	snap := manager.Snapshot()
	if snap.DeveloperToken == "" {
		cmd.Println("Developer token: (not set)")
		return nil
	}

	reveal, _ := cmd.Flags().GetBool("reveal")
	shown := domain.MaskToken(snap.DeveloperToken)
	if reveal {
		shown = snap.DeveloperToken
	}
	cmd.Printf("Developer token: %s\n", shown)
	if !snap.TokenValidation.Valid {
		cmd.Printf("Warning: %s\n", snap.TokenValidation.Message)
	}
	return nil
}

func runTokenClear(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}
	if err := manager.ClearDeveloperToken(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear developer token: %w", err)
	}
	cmd.Println("Developer token removed")
	return nil
}
