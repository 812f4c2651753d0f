package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	withServices(t, nil, newSettings())

	out, err := executeCommand(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Config file: :memory:")
	assert.Contains(t, out, "Client ID: (not set)")
	assert.Contains(t, out, "Endpoint: https://googleads.googleapis.com/"+domain.DefaultAPIVersion)
	assert.Contains(t, out, "Currency: USD")
	assert.Contains(t, out, "Time zone: America/New_York")
	assert.Contains(t, out, "Backend: sqlite")
	assert.Contains(t, out, "Warning: configuration error")
}

func TestSettingsShow_Valid(t *testing.T) {
	settings := newSettings()
	require.NoError(t, settings.SetOAuthClient("client.apps.googleusercontent.com", "", nil))
	withServices(t, nil, settings)

	out, err := executeCommand(t, "", "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Client ID: client.apps.googleusercontent.com")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsDefaults(t *testing.T) {
	settings := newSettings()
	withServices(t, nil, settings)

	out, err := executeCommand(t, "", "settings", "defaults", "--currency", "eur", "--timezone", "Europe/Berlin")

	require.NoError(t, err)
	assert.Contains(t, out, "New accounts use EUR in Europe/Berlin")
	current, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerDefaults{CurrencyCode: "EUR", TimeZone: "Europe/Berlin"}, current.Customer)
}

func TestSettingsDefaults_RequiresAFlag(t *testing.T) {
	withServices(t, nil, newSettings())

	_, err := executeCommand(t, "", "settings", "defaults")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsStorage(t *testing.T) {
	settings := newSettings()
	withServices(t, nil, settings)

	out, err := executeCommand(t, "", "settings", "storage", "file")

	require.NoError(t, err)
	assert.Contains(t, out, "Storage backend set to file")
	current, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageFile, current.Storage)
}

func TestSettingsStorage_Unknown(t *testing.T) {
	withServices(t, nil, newSettings())

	_, err := executeCommand(t, "", "settings", "storage", "redis")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
