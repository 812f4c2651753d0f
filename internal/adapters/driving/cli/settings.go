package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Set the currency and time zone for new child accounts",
	Long: `Set the currency and time zone used by 'mcc customers create-child'.

Examples:
  mcc settings defaults --currency EUR --timezone Europe/Berlin`,
	RunE: runSettingsDefaults,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage <sqlite|file>",
	Short: "Select where accounts and the developer token are stored",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsStorage,
}

func init() {
	settingsDefaultsCmd.Flags().String("currency", "", "ISO 4217 currency code, e.g. USD")
	settingsDefaultsCmd.Flags().String("timezone", "", "IANA time zone, e.g. America/New_York")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsDefaultsCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := requireSettings()
	if err != nil {
		return err
	}

	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", settings.ConfigPath())
	cmd.Println()

	cmd.Println("[OAuth]")
	if current.OAuth.ClientID != "" {
		cmd.Printf("  Client ID: %s\n", current.OAuth.ClientID)
	} else {
		cmd.Println("  Client ID: (not set)")
	}
	cmd.Printf("  Scopes: %d\n", len(current.OAuth.Scopes))
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Endpoint: %s\n", current.API.Endpoint())
	cmd.Println()

	cmd.Println("[New Customers]")
	cmd.Printf("  Currency: %s\n", current.Customer.CurrencyCode)
	cmd.Printf("  Time zone: %s\n", current.Customer.TimeZone)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", current.Storage)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsDefaults(cmd *cobra.Command, _ []string) error {
	settings, err := requireSettings()
	if err != nil {
		return err
	}

	currency, _ := cmd.Flags().GetString("currency")
	timeZone, _ := cmd.Flags().GetString("timezone")
	if currency == "" && timeZone == "" {
		return fmt.Errorf("%w: pass --currency and/or --timezone", domain.ErrInvalidInput)
	}

	if err := settings.SetCustomerDefaults(currency, timeZone); err != nil {
		return fmt.Errorf("failed to save defaults: %w", err)
	}

	current, err := settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("New accounts use %s in %s\n", current.Customer.CurrencyCode, current.Customer.TimeZone)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	settings, err := requireSettings()
	if err != nil {
		return err
	}

	backend := domain.StorageBackend(args[0])
	if err := settings.SetStorageBackend(backend); err != nil {
		return err
	}
	cmd.Printf("Storage backend set to %s\n", backend)
	return nil
}
