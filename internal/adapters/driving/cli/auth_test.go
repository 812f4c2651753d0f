package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

func TestAuthSetup_Flags(t *testing.T) {
	settings := newSettings()
	withServices(t, nil, settings)

	out, err := executeCommand(t, "",
		"auth", "setup",
		"--client-id", "client.apps.googleusercontent.com",
		"--client-secret", "s3cret-value",
		"--scopes", "https://www.googleapis.com/auth/adwords,openid",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "OAuth client saved to :memory:")
	current, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "client.apps.googleusercontent.com", current.OAuth.ClientID)
	assert.Equal(t, "s3cret-value", current.OAuth.ClientSecret)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/adwords", "openid"}, current.OAuth.Scopes)
}

func TestAuthSetup_Prompts(t *testing.T) {
	settings := newSettings()
	withServices(t, nil, settings)

	out, err := executeCommand(t, "prompted-client\nprompted-secret\n", "auth", "setup")

	require.NoError(t, err)
	assert.Contains(t, out, "OAuth client id: ")
	assert.Contains(t, out, "OAuth client secret (optional): ")
	current, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "prompted-client", current.OAuth.ClientID)
	assert.Equal(t, "prompted-secret", current.OAuth.ClientSecret)
	assert.Equal(t, domain.DefaultScopes, current.OAuth.Scopes)
}

func TestAuthSetup_RequiresClientID(t *testing.T) {
	withServices(t, nil, newSettings())

	_, err := executeCommand(t, "\n", "auth", "setup")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthShow(t *testing.T) {
	settings := newSettings()
	require.NoError(t, settings.SetOAuthClient("client-id", "abcdefgh", nil))
	withServices(t, nil, settings)

	out, err := executeCommand(t, "", "auth", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Client ID: client-id")
	assert.Contains(t, out, "Client Secret: ****efgh")
	assert.Contains(t, out, "- https://www.googleapis.com/auth/adwords")
	assert.NotContains(t, out, "Warning")
}

func TestAuthLogin(t *testing.T) {
	m := &fakeManager{snapshot: domain.ManagerSnapshot{
		Accounts: []domain.Account{alice},
		Selected: &alice,
	}}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "auth", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "* Alice <alice@example.com>")
}

func TestAuthLogin_Error(t *testing.T) {
	withServices(t, &fakeManager{err: domain.ErrAuth}, nil)

	_, err := executeCommand(t, "", "auth", "login")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Contains(t, err.Error(), "sign-in failed")
}
