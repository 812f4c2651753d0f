package services

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyOAuthClientID     = "oauth.client_id"
	keyOAuthClientSecret = "oauth.client_secret"
	keyOAuthScopes       = "oauth.scopes"
	keyAPIBaseURL        = "api.base_url"
	keyAPIVersion        = "api.version"
	keyCustomerCurrency  = "customer.currency_code"
	keyCustomerTimeZone  = "customer.time_zone"
	keyStorageBackend    = "storage.backend"
)

// envOverrides are read from the environment and win over the config file.
type envOverrides struct {
	ClientID       string `env:"MCC_CLIENT_ID"`
	ClientSecret   string `env:"MCC_CLIENT_SECRET"`
	APIBaseURL     string `env:"MCC_API_BASE_URL"`
	APIVersion     string `env:"MCC_API_VERSION"`
	StorageBackend string `env:"MCC_STORAGE_BACKEND"`
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	readEnv     func(any) error
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		readEnv:     cleanenv.ReadEnv,
	}
}

// Get retrieves current settings with defaults and environment overrides
// applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		OAuth: domain.OAuthSettings{
			ClientID:     s.configStore.GetString(keyOAuthClientID),
			ClientSecret: s.configStore.GetString(keyOAuthClientSecret),
			Scopes:       s.getScopes(defaults.OAuth.Scopes),
		},
		API: domain.APISettings{
			BaseURL: strings.TrimRight(s.getString(keyAPIBaseURL, defaults.API.BaseURL), "/"),
			Version: s.getString(keyAPIVersion, defaults.API.Version),
		},
		Customer: domain.CustomerDefaults{
			CurrencyCode: s.getString(keyCustomerCurrency, defaults.Customer.CurrencyCode),
			TimeZone:     s.getString(keyCustomerTimeZone, defaults.Customer.TimeZone),
		},
		Storage: s.getStorage(defaults.Storage),
	}

	var env envOverrides
	if err := s.readEnv(&env); err != nil {
		return nil, fmt.Errorf("%w: read environment: %w", domain.ErrConfig, err)
	}
	applyEnv(settings, env)

	return settings, nil
}

func applyEnv(settings *domain.AppSettings, env envOverrides) {
	if env.ClientID != "" {
		settings.OAuth.ClientID = env.ClientID
	}
	if env.ClientSecret != "" {
		settings.OAuth.ClientSecret = env.ClientSecret
	}
	if env.APIBaseURL != "" {
		settings.API.BaseURL = strings.TrimRight(env.APIBaseURL, "/")
	}
	if env.APIVersion != "" {
		settings.API.Version = env.APIVersion
	}
	if b := domain.StorageBackend(env.StorageBackend); b.IsValid() {
		settings.Storage = b
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyOAuthClientID, settings.OAuth.ClientID},
		{keyOAuthScopes, settings.OAuth.Scopes},
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPIVersion, settings.API.Version},
		{keyCustomerCurrency, settings.Customer.CurrencyCode},
		{keyCustomerTimeZone, settings.Customer.TimeZone},
		{keyStorageBackend, settings.Storage.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.OAuth.ClientSecret != "" {
		if err := s.configStore.Set(keyOAuthClientSecret, settings.OAuth.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", keyOAuthClientSecret, err)
		}
	}
	return nil
}

// SetOAuthClient configures the Google OAuth client.
func (s *SettingsService) SetOAuthClient(clientID, clientSecret string, scopes []string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.OAuth.ClientID = strings.TrimSpace(clientID)
	settings.OAuth.ClientSecret = clientSecret
	if scopes != nil {
		settings.OAuth.Scopes = scopes
	}
	return s.Save(settings)
}

// SetCustomerDefaults updates the currency and time zone for new child
// accounts.
func (s *SettingsService) SetCustomerDefaults(currencyCode, timeZone string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if currencyCode != "" {
		settings.Customer.CurrencyCode = strings.ToUpper(currencyCode)
	}
	if timeZone != "" {
		settings.Customer.TimeZone = timeZone
	}
	return s.Save(settings)
}

// SetStorageBackend selects the Token Store implementation.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(keyStorageBackend, backend.String())
}

// Validate checks the settings needed to sign in.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getScopes(defaultVal []string) []string {
	if scopes := s.configStore.GetStringSlice(keyOAuthScopes); len(scopes) > 0 {
		return scopes
	}
	return defaultVal
}

func (s *SettingsService) getStorage(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if b.IsValid() {
		return b
	}
	return defaultVal
}
