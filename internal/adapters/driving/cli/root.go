// Package cli implements the mcc command line on cobra.
//
// Services are injected by main through SetServices before Execute runs.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

var (
	version = "dev"
	verbose bool

	managerService  driving.ManagerService
	settingsService driving.SettingsService
	newCustomerView func() driving.CustomerViewService
	watchTokens     func(ctx context.Context, onChange func()) error
)

// Services holds the driving ports the commands call.
type Services struct {
	Manager  driving.ManagerService
	Settings driving.SettingsService
	// NewCustomerView builds an empty customer view.
	NewCustomerView func() driving.CustomerViewService
	// WatchTokens reports token store changes made by other processes.
	// Optional; long-running commands reload state when it fires.
	WatchTokens func(ctx context.Context, onChange func()) error
}

var rootCmd = &cobra.Command{
	Use:   "mcc",
	Short: "Manage Google Ads manager (MCC) accounts",
	Long: `mcc signs in to Google, stores a Google Ads developer token and
lists or creates customers under your manager accounts.

Get started:
  mcc auth setup --client-id <id> --client-secret <secret>
  mcc account add
  mcc token set
  mcc customers list`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	managerService = s.Manager
	settingsService = s.Settings
	newCustomerView = s.NewCustomerView
	watchTokens = s.WatchTokens
}

// SetVersion sets the version reported by 'mcc version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// startManager returns the manager after restoring persisted state.
func startManager(cmd *cobra.Command) (driving.ManagerService, error) {
	if managerService == nil {
		return nil, errors.New("manager service not configured")
	}
	managerService.Start(cmd.Context())
	return managerService, nil
}

func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}

// warnRefresh prints a refresh failure recorded while running an action.
func warnRefresh(cmd *cobra.Command, manager driving.ManagerService) {
	if err := manager.Snapshot().Err; err != nil {
		cmd.Printf("Warning: refreshing customers failed: %v\n", err)
	}
}

// followTokenStore restarts the manager whenever the token store changes
// underneath it, until ctx is cancelled.
func followTokenStore(ctx context.Context, manager driving.ManagerService) {
	if watchTokens == nil {
		return
	}
	err := watchTokens(ctx, func() {
		logger.Debug("token store changed, reloading")
		manager.Start(ctx)
	})
	if err != nil {
		logger.Warn("not watching token store: %v", err)
	}
}
