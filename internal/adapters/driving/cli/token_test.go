package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

func TestTokenSet_FromArgument(t *testing.T) {
	m := &fakeManager{}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "token", "set", validToken)

	require.NoError(t, err)
	assert.Contains(t, out, "Developer token saved")
	assert.Equal(t, []string{validToken}, m.tokens)
}

func TestTokenSet_FromPrompt(t *testing.T) {
	m := &fakeManager{}
	withServices(t, m, nil)

	out, err := executeCommand(t, validToken+"\n", "token", "set")

	require.NoError(t, err)
	assert.Contains(t, out, "Developer token: ")
	assert.Equal(t, []string{validToken}, m.tokens)
}

func TestTokenSet_Invalid(t *testing.T) {
	withServices(t, &fakeManager{}, nil)

	_, err := executeCommand(t, "", "token", "set", "short")

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenSet_StoreFailure(t *testing.T) {
	withServices(t, &fakeManager{err: errors.New("disk full")}, nil)

	_, err := executeCommand(t, "", "token", "set", validToken)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save developer token: disk full")
}

func TestTokenShow(t *testing.T) {
	t.Run("not set", func(t *testing.T) {
		withServices(t, &fakeManager{}, nil)

		out, err := executeCommand(t, "", "token", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "Developer token: (not set)")
	})

	t.Run("masked", func(t *testing.T) {
		withServices(t, &fakeManager{snapshot: domain.ManagerSnapshot{
			DeveloperToken:  validToken,
			TokenValidation: domain.TokenValidation{Valid: true},
		}}, nil)

		out, err := executeCommand(t, "", "token", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "Developer token: ****************6789")
		assert.NotContains(t, out, validToken)
		assert.NotContains(t, out, "Warning")
	})

	t.Run("revealed", func(t *testing.T) {
		withServices(t, &fakeManager{snapshot: domain.ManagerSnapshot{
			DeveloperToken:  validToken,
			TokenValidation: domain.TokenValidation{Valid: true},
		}}, nil)

		out, err := executeCommand(t, "", "token", "show", "--reveal")

		require.NoError(t, err)
		assert.Contains(t, out, "Developer token: "+validToken)
	})

	t.Run("invalid stored token", func(t *testing.T) {
		withServices(t, &fakeManager{snapshot: domain.ManagerSnapshot{
			DeveloperToken:  "bad token!",
			TokenValidation: domain.ValidateDeveloperToken("bad token!"),
		}}, nil)

		out, err := executeCommand(t, "", "token", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "Warning: Developer token should be at least 20 characters")
	})
}

func TestTokenClear(t *testing.T) {
	m := &fakeManager{}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "token", "clear")

	require.NoError(t, err)
	assert.True(t, m.cleared)
	assert.Contains(t, out, "Developer token removed")
}
