package driving

import "github.com/custodia-labs/mcc-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults and environment
	// overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetOAuthClient configures the Google OAuth client.
	// Nil scopes keep the configured scopes.
	SetOAuthClient(clientID, clientSecret string, scopes []string) error

	// SetCustomerDefaults updates the currency and time zone for new
	// child accounts. Empty values are left unchanged.
	SetCustomerDefaults(currencyCode, timeZone string) error

	// SetStorageBackend selects the Token Store implementation.
	SetStorageBackend(backend domain.StorageBackend) error

	// Validate checks the settings needed to sign in.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
