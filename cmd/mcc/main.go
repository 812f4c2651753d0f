// Command mcc manages Google Ads manager (MCC) accounts from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	configfile "github.com/custodia-labs/mcc-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driven/googleads"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driven/identity/google"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mcc-cli/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening database: %v\n", err)
		return err
	}
	defer func() { _ = store.Close() }()

	tokens, watch, err := tokenStore(settings.Storage, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening token store: %v\n", err)
		return err
	}

	session := google.NewSession(google.Config{
		ClientID:     settings.OAuth.ClientID,
		ClientSecret: settings.OAuth.ClientSecret,
		Scopes:       settings.OAuth.Scopes,
		OpenURL:      openURL,
	}, store.GrantStore())
	ads := googleads.NewClient(settings.API, nil)

	registry := services.NewAccountRegistry(tokens, session, settings.OAuth.Scopes)
	manager := services.NewManager(registry, tokens, session, ads, services.ManagerConfig{
		Scopes:   settings.OAuth.Scopes,
		Defaults: settings.Customer,
	})

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Manager:  manager,
		Settings: settingsService,
		NewCustomerView: func() driving.CustomerViewService {
			return services.NewCustomerView()
		},
		WatchTokens: watch,
	})
	return cli.Execute(ctx)
}

// tokenStore opens the configured token backend. The file backend can also
// report changes made by other mcc processes.
func tokenStore(
	backend domain.StorageBackend,
	store *sqlite.Store,
) (driven.TokenStore, func(context.Context, func()) error, error) {
	if backend != domain.StorageFile {
		return store.TokenStore(), nil, nil
	}
	fileStore, err := file.NewTokenStore("")
	if err != nil {
		return nil, nil, err
	}
	return fileStore, fileStore.Watch, nil
}

// openURL opens the consent page and prints it in case no browser starts.
func openURL(url string) error {
	fmt.Fprintf(os.Stderr, "Opening Google sign-in in your browser:\n  %s\n", url)
	if err := oauth.OpenBrowser(url); err != nil {
		fmt.Fprintln(os.Stderr, "Could not open a browser; open the URL above manually.")
	}
	return nil
}
