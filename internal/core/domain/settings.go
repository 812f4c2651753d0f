package domain

import "fmt"

// Default Ads API and account-creation settings.
const (
	DefaultAPIBaseURL   = "https://googleads.googleapis.com"
	DefaultAPIVersion   = "v18"
	DefaultCurrencyCode = "USD"
	DefaultTimeZone     = "America/New_York"
)

// DefaultScopes are requested when no scopes are configured.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/adwords",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// StorageBackend selects the Token Store implementation.
type StorageBackend string

const (
	// StorageSQLite keeps tokens in the SQLite database.
	StorageSQLite StorageBackend = "sqlite"
	// StorageFile keeps tokens in a watched JSON file.
	StorageFile StorageBackend = "file"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageFile
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// OAuthSettings holds the OAuth client used to sign in to Google.
type OAuthSettings struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// IsConfigured returns true when a client id and scopes are present.
func (o OAuthSettings) IsConfigured() bool {
	return o.ClientID != "" && len(o.Scopes) > 0
}

// APISettings locates the Google Ads REST API.
type APISettings struct {
	BaseURL string
	Version string
}

// Endpoint returns the versioned base path, e.g. https://host/v18.
func (a APISettings) Endpoint() string {
	return a.BaseURL + "/" + a.Version
}

// CustomerDefaults are applied to new child accounts.
type CustomerDefaults struct {
	CurrencyCode string
	TimeZone     string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	OAuth    OAuthSettings
	API      APISettings
	Customer CustomerDefaults
	Storage  StorageBackend
}

// DefaultAppSettings returns settings with defaults and no OAuth client.
func DefaultAppSettings() AppSettings {
	scopes := make([]string, len(DefaultScopes))
	copy(scopes, DefaultScopes)
	return AppSettings{
		OAuth: OAuthSettings{Scopes: scopes},
		API: APISettings{
			BaseURL: DefaultAPIBaseURL,
			Version: DefaultAPIVersion,
		},
		Customer: CustomerDefaults{
			CurrencyCode: DefaultCurrencyCode,
			TimeZone:     DefaultTimeZone,
		},
		Storage: StorageSQLite,
	}
}

// Validate reports configuration problems that block signing in.
func (s AppSettings) Validate() error {
	if !s.OAuth.IsConfigured() {
		return fmt.Errorf("%w: OAuth client id and scopes are required (run 'mcc auth setup')", ErrConfig)
	}
	if !s.Storage.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrConfig, s.Storage)
	}
	return nil
}
