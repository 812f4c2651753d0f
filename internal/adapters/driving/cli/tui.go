package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive account manager.

Enter a developer token, pick or add a Google account and browse the
customers under your manager account.

Controls:
  tab/shift+tab - Move between fields
  enter         - Save token / open account list / select
  ctrl+r        - Show or hide the developer token
  ↑/k, ↓/j      - Navigate
  1-4           - Sort by id, name, type or level
  r             - Refresh customers
  c             - Create a child MCC
  ?             - Toggle help
  q             - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if managerService == nil {
		return errors.New("manager service not configured")
	}

	var view driving.CustomerViewService
	if newCustomerView != nil {
		view = newCustomerView()
	}

	app, err := tui.NewApp(&tui.Ports{Manager: managerService, Customers: view})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	followTokenStore(ctx, managerService)
	app.WithContext(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
