package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure Google sign-in",
	Long: `Configure the Google OAuth client mcc signs in with.

Create an OAuth client of type "Desktop app" in the Google Cloud console and
enable the Google Ads API for its project.

Examples:
  # Interactive
  mcc auth setup

  # Non-interactive
  mcc auth setup --client-id "xxx.apps.googleusercontent.com" --client-secret "yyy"

  # Sign in with the current Google identity
  mcc auth login`,
}

var authSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the OAuth client id, secret and scopes",
	RunE:  runAuthSetup,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the OAuth configuration",
	RunE:  runAuthShow,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and add the current Google identity to the account list",
	RunE:  runAuthLogin,
}

func init() {
	authSetupCmd.Flags().String("client-id", "", "OAuth client id")
	authSetupCmd.Flags().String("client-secret", "", "OAuth client secret")
	authSetupCmd.Flags().String("scopes", "", "comma separated OAuth scopes (default: Ads, email, profile)")

	authCmd.AddCommand(authSetupCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authLoginCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetup(cmd *cobra.Command, _ []string) error {
	settings, err := requireSettings()
	if err != nil {
		return err
	}

	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")
	scopes, _ := cmd.Flags().GetString("scopes")

	reader := bufio.NewReader(cmd.InOrStdin())
	if clientID == "" {
		clientID = prompt(cmd, reader, "OAuth client id: ")
	}
	if clientID == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	}
	if clientSecret == "" && !cmd.Flags().Changed("client-id") {
		clientSecret = promptSecret(cmd, reader, "OAuth client secret (optional): ")
	}

	if err := settings.SetOAuthClient(clientID, clientSecret, splitList(scopes)); err != nil {
		return fmt.Errorf("failed to save OAuth client: %w", err)
	}

	cmd.Printf("OAuth client saved to %s\n", settings.ConfigPath())
	cmd.Println("Run 'mcc auth login' to sign in.")
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	settings, err := requireSettings()
	if err != nil {
		return err
	}

	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[OAuth]")
	if current.OAuth.ClientID != "" {
		cmd.Printf("  Client ID: %s\n", current.OAuth.ClientID)
	} else {
		cmd.Println("  Client ID: (not set)")
	}
	if current.OAuth.ClientSecret != "" {
		cmd.Printf("  Client Secret: %s\n", domain.MaskToken(current.OAuth.ClientSecret))
	} else {
		cmd.Println("  Client Secret: (not set)")
	}
	cmd.Println("  Scopes:")
	for _, s := range current.OAuth.Scopes {
		cmd.Printf("    - %s\n", s)
	}

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	manager, err := startManager(cmd)
	if err != nil {
		return err
	}

	accounts, err := manager.LoadAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	printAccounts(cmd, accounts, manager.Snapshot().Selected)
	return nil
}
