package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

// Ensure AccountRegistry implements the interface.
var _ driving.AccountService = (*AccountRegistry)(nil)

// AccountRegistry merges the current Google identity with stored accounts and
// tracks which account is selected.
type AccountRegistry struct {
	store    driven.TokenStore
	identity driven.IdentityProvider
	scopes   []string

	mu       sync.RWMutex
	accounts []domain.Account
	selected string

	subs subscribers[func()]
}

// NewAccountRegistry creates an account registry.
func NewAccountRegistry(
	store driven.TokenStore,
	identity driven.IdentityProvider,
	scopes []string,
) *AccountRegistry {
	return &AccountRegistry{
		store:    store,
		identity: identity,
		scopes:   scopes,
	}
}

// Load fetches the current identity and merges it into the stored list.
func (r *AccountRegistry) Load(ctx context.Context) ([]domain.Account, error) {
	if r.store == nil || r.identity == nil {
		return nil, domain.ErrNotImplemented
	}

	token, err := r.identity.GetToken(ctx, driven.TokenRequest{
		Interactive: true,
		Scopes:      r.scopes,
	})
	if err != nil {
		return nil, fmt.Errorf("get identity token: %w", err)
	}
	profile, err := r.identity.FetchProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	current := profile.Account()

	stored, err := r.readAccounts(ctx)
	if err != nil {
		return nil, err
	}
	merged := domain.MergeAccount(stored, current)
	if err := r.writeAccounts(ctx, merged); err != nil {
		return nil, err
	}
	r.commitAccounts(merged)

	pointer, ok, err := r.store.Get(ctx, domain.KeyLastSelectedAccount)
	if err != nil {
		r.subs.notify(func(fn func()) { fn() })
		return nil, domain.StorageError("get", domain.KeyLastSelectedAccount, err)
	}
	selected := pointer
	if !ok {
		if err := r.store.Set(ctx, domain.KeyLastSelectedAccount, current.Email); err != nil {
			r.subs.notify(func(fn func()) { fn() })
			return nil, domain.StorageError("set", domain.KeyLastSelectedAccount, err)
		}
		selected = current.Email
	} else if domain.FindAccount(merged, pointer) < 0 {
		selected = ""
	}

	r.mu.Lock()
	r.selected = selected
	r.mu.Unlock()

	logger.Debug("accounts loaded: %d, selected %q", len(merged), selected)
	r.subs.notify(func(fn func()) { fn() })
	return r.Accounts(), nil
}

// Add prompts for another Google account and appends it when new.
func (r *AccountRegistry) Add(ctx context.Context) (*domain.Account, error) {
	if r.store == nil || r.identity == nil {
		return nil, domain.ErrNotImplemented
	}

	if err := r.identity.ClearCachedTokens(ctx); err != nil {
		return nil, fmt.Errorf("clear cached tokens: %w", err)
	}
	token, err := r.identity.GetToken(ctx, driven.TokenRequest{
		Interactive:   true,
		SelectAccount: true,
		Scopes:        r.scopes,
	})
	if err != nil {
		return nil, fmt.Errorf("get identity token: %w", err)
	}
	profile, err := r.identity.FetchProfile(ctx, token)
	if rmErr := r.identity.RemoveCachedToken(ctx, token); rmErr != nil {
		logger.Warn("remove cached token: %v", rmErr)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	acc := profile.Account()

	r.mu.RLock()
	exists := domain.FindAccount(r.accounts, acc.Email) >= 0
	accounts := r.accounts
	r.mu.RUnlock()
	if exists {
		logger.Debug("account %s already present", acc.Email)
		return &acc, nil
	}

	updated := domain.MergeAccount(accounts, acc)
	if err := r.writeAccounts(ctx, updated); err != nil {
		return nil, err
	}
	r.commitAccounts(updated)
	if err := r.store.Set(ctx, domain.KeyLastSelectedAccount, acc.Email); err != nil {
		r.subs.notify(func(fn func()) { fn() })
		return nil, domain.StorageError("set", domain.KeyLastSelectedAccount, err)
	}

	r.mu.Lock()
	r.selected = acc.Email
	r.mu.Unlock()

	logger.Info("added account %s", acc.Email)
	r.subs.notify(func(fn func()) { fn() })
	return &acc, nil
}

// Select makes the account with the given email the selected one.
func (r *AccountRegistry) Select(ctx context.Context, email string) (*domain.Account, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}

	r.mu.RLock()
	idx := domain.FindAccount(r.accounts, email)
	var acc domain.Account
	if idx >= 0 {
		acc = r.accounts[idx]
	}
	r.mu.RUnlock()
	if idx < 0 {
		return nil, fmt.Errorf("account %q: %w", email, domain.ErrNotFound)
	}

	if err := r.store.Set(ctx, domain.KeyLastSelectedAccount, email); err != nil {
		return nil, domain.StorageError("set", domain.KeyLastSelectedAccount, err)
	}

	r.mu.Lock()
	r.selected = email
	r.mu.Unlock()

	r.subs.notify(func(fn func()) { fn() })
	return &acc, nil
}

// Restore reads the stored list and selection.
func (r *AccountRegistry) Restore(ctx context.Context) error {
	if r.store == nil {
		return domain.ErrNotImplemented
	}

	accounts, err := r.readAccounts(ctx)
	if err != nil {
		return err
	}
	pointer, _, err := r.store.Get(ctx, domain.KeyLastSelectedAccount)
	if err != nil {
		return domain.StorageError("get", domain.KeyLastSelectedAccount, err)
	}
	if domain.FindAccount(accounts, pointer) < 0 {
		pointer = ""
	}

	r.mu.Lock()
	r.accounts = accounts
	r.selected = pointer
	r.mu.Unlock()

	r.subs.notify(func(fn func()) { fn() })
	return nil
}

// Accounts returns a copy of the account list.
func (r *AccountRegistry) Accounts() []domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Selected returns the selected account, or nil.
func (r *AccountRegistry) Selected() *domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.selected == "" {
		return nil
	}
	idx := domain.FindAccount(r.accounts, r.selected)
	if idx < 0 {
		return nil
	}
	acc := r.accounts[idx]
	return &acc
}

// Subscribe registers fn to be called after each successful change.
func (r *AccountRegistry) Subscribe(fn func()) func() {
	return r.subs.add(fn)
}

func (r *AccountRegistry) readAccounts(ctx context.Context) ([]domain.Account, error) {
	raw, ok, err := r.store.Get(ctx, domain.KeyGoogleAccounts)
	if err != nil {
		return nil, domain.StorageError("get", domain.KeyGoogleAccounts, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, domain.StorageError("decode", domain.KeyGoogleAccounts, err)
	}
	return accounts, nil
}

// commitAccounts mirrors a list that has been written to the store.
func (r *AccountRegistry) commitAccounts(accounts []domain.Account) {
	r.mu.Lock()
	r.accounts = accounts
	r.mu.Unlock()
}

func (r *AccountRegistry) writeAccounts(ctx context.Context, accounts []domain.Account) error {
	if accounts == nil {
		accounts = []domain.Account{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return domain.StorageError("encode", domain.KeyGoogleAccounts, err)
	}
	if err := r.store.Set(ctx, domain.KeyGoogleAccounts, string(data)); err != nil {
		return domain.StorageError("set", domain.KeyGoogleAccounts, err)
	}
	return nil
}
