package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

func TestStateChanged(t *testing.T) {
	snap := domain.ManagerSnapshot{State: domain.StateReady, DeveloperToken: "token"}
	msg := StateChanged{Snapshot: snap}

	assert.Equal(t, domain.StateReady, msg.Snapshot.State)
	assert.Equal(t, "token", msg.Snapshot.DeveloperToken)
}

func TestTokenSubmitted(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		msg := TokenSubmitted{Validation: domain.TokenValidation{Valid: true}}
		assert.True(t, msg.Validation.Valid)
		assert.NoError(t, msg.Err)
	})

	t.Run("invalid", func(t *testing.T) {
		msg := TokenSubmitted{
			Validation: domain.ValidateDeveloperToken("short"),
			Err:        domain.ErrInvalidToken,
		}
		assert.False(t, msg.Validation.Valid)
		assert.ErrorIs(t, msg.Err, domain.ErrInvalidToken)
	})
}

func TestActionResults(t *testing.T) {
	acc := &domain.Account{Email: "alice@example.com"}
	cust := &domain.Customer{ID: "123"}
	boom := errors.New("boom")

	assert.Equal(t, acc, AccountAdded{Account: acc}.Account)
	assert.Equal(t, boom, AccountSelected{Err: boom}.Err)
	assert.Len(t, CustomersLoaded{Customers: []domain.Customer{*cust}}.Customers, 1)
	assert.Equal(t, "123", ChildCreated{Customer: cust}.Customer.ID)
}
