package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mcc-cli/internal/logger"
)

// Ensure Manager implements the interface.
var _ driving.ManagerService = (*Manager)(nil)

// ManagerConfig carries the settings the manager needs at runtime.
type ManagerConfig struct {
	// Scopes requested for silent access tokens.
	Scopes []string
	// Defaults applied to new child accounts.
	Defaults domain.CustomerDefaults
}

// Manager connects operator actions to the account registry, the developer
// token and the Google Ads API.
//
// Fields are guarded by a mutex for memory safety only. Refreshes are not
// sequenced: when two overlap, the one that finishes last sets the list.
type Manager struct {
	accounts driving.AccountService
	store    driven.TokenStore
	identity driven.IdentityProvider
	ads      driven.AdsClient
	config   ManagerConfig

	mu         sync.RWMutex
	token      string
	validation domain.TokenValidation
	customers  []domain.Customer
	loading    bool
	err        error
	notice     string

	subs subscribers[func(domain.ManagerSnapshot)]
}

// NewManager creates a manager and forwards account changes to its
// subscribers.
func NewManager(
	accounts driving.AccountService,
	store driven.TokenStore,
	identity driven.IdentityProvider,
	ads driven.AdsClient,
	config ManagerConfig,
) *Manager {
	m := &Manager{
		accounts:   accounts,
		store:      store,
		identity:   identity,
		ads:        ads,
		config:     config,
		validation: domain.ValidateDeveloperToken(""),
	}
	if accounts != nil {
		accounts.Subscribe(m.publish)
	}
	return m
}

// Start loads the persisted developer token and account list. It is also
// called to reload after the Token Store changes on disk.
func (m *Manager) Start(ctx context.Context) {
	logger.Section("Start")
	if m.store != nil {
		token, ok, err := m.store.Get(ctx, domain.KeyDeveloperToken)
		switch {
		case err != nil:
			logger.Error(err, "load developer token")
		case ok:
			m.mu.Lock()
			m.token = token
			m.validation = domain.ValidateDeveloperToken(token)
			m.mu.Unlock()
		default:
			// Removed by another process; customers fetched with it go too.
			m.mu.Lock()
			m.token = ""
			m.validation = domain.ValidateDeveloperToken("")
			m.customers = nil
			m.mu.Unlock()
		}
	}
	if m.accounts != nil {
		if err := m.accounts.Restore(ctx); err != nil {
			logger.Error(err, "restore accounts")
		}
	}
	m.publish()
}

// SetDeveloperToken validates and, when valid, persists the token.
func (m *Manager) SetDeveloperToken(ctx context.Context, token string) (domain.TokenValidation, error) {
	v := domain.ValidateDeveloperToken(token)

	m.mu.Lock()
	m.token = token
	m.validation = v
	m.mu.Unlock()

	if !v.Valid {
		m.publish()
		return v, fmt.Errorf("%w: %s", domain.ErrInvalidToken, v.Message)
	}
	if m.store == nil {
		return v, domain.ErrNotImplemented
	}
	if err := m.store.Set(ctx, domain.KeyDeveloperToken, token); err != nil {
		m.publish()
		return v, domain.StorageError("set", domain.KeyDeveloperToken, err)
	}
	logger.Info("developer token saved (%s)", domain.MaskToken(token))

	m.setNotice("Developer token saved")
	if m.selected() != nil {
		m.refreshInBand(ctx)
	}
	return v, nil
}

// ClearDeveloperToken removes the stored developer token.
func (m *Manager) ClearDeveloperToken(ctx context.Context) error {
	if m.store == nil {
		return domain.ErrNotImplemented
	}
	if err := m.store.Remove(ctx, domain.KeyDeveloperToken); err != nil {
		return domain.StorageError("remove", domain.KeyDeveloperToken, err)
	}

	m.mu.Lock()
	m.token = ""
	m.validation = domain.ValidateDeveloperToken("")
	m.customers = nil
	m.err = nil
	m.notice = "Developer token cleared"
	m.mu.Unlock()

	m.publish()
	return nil
}

// LoadAccounts signs in with the current Google identity.
func (m *Manager) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	if m.accounts == nil {
		return nil, domain.ErrNotImplemented
	}
	accounts, err := m.accounts.Load(ctx)
	if err != nil {
		m.fail(err)
		return nil, err
	}
	if m.canRefresh() {
		m.refreshInBand(ctx)
	}
	return accounts, nil
}

// AddAccount prompts for another Google account.
func (m *Manager) AddAccount(ctx context.Context) (*domain.Account, error) {
	if m.accounts == nil {
		return nil, domain.ErrNotImplemented
	}
	acc, err := m.accounts.Add(ctx)
	if err != nil {
		m.fail(err)
		return nil, err
	}
	m.setNotice("Signed in as " + acc.Email)
	if m.canRefresh() {
		m.refreshInBand(ctx)
	}
	return acc, nil
}

// SelectAccount switches account and refreshes when the token is valid.
func (m *Manager) SelectAccount(ctx context.Context, email string) (*domain.Account, error) {
	if m.accounts == nil {
		return nil, domain.ErrNotImplemented
	}
	acc, err := m.accounts.Select(ctx, email)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.customers = nil
	m.err = nil
	m.mu.Unlock()

	if m.canRefresh() {
		m.refreshInBand(ctx)
	} else {
		m.publish()
	}
	return acc, nil
}

// Refresh reloads the customer list for the selected account.
// Overlapping refreshes are not fenced: the last to finish sets the list and
// the first to finish clears the loading flag.
func (m *Manager) Refresh(ctx context.Context) ([]domain.Customer, error) {
	if m.identity == nil || m.ads == nil {
		return nil, domain.ErrNotImplemented
	}
	acc, devToken, err := m.requireReady()
	if err != nil {
		return nil, err
	}

	logger.Section("Refresh")
	m.mu.Lock()
	m.loading = true
	m.err = nil
	m.mu.Unlock()
	m.publish()

	customers, err := m.listCustomers(ctx, acc.Email, devToken)

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.err = err
	} else {
		m.customers = customers
		m.err = nil
	}
	m.mu.Unlock()
	m.publish()

	if err != nil {
		logger.Error(err, "refresh customers for %s", acc.Email)
		return nil, err
	}
	logger.Info("loaded %d customers for %s", len(customers), acc.Email)
	return customers, nil
}

// CreateChildMCC creates a child account under parentID and refreshes.
// An empty parentID uses the first accessible customer.
func (m *Manager) CreateChildMCC(ctx context.Context, parentID, name string) (*domain.Customer, error) {
	if m.identity == nil || m.ads == nil {
		return nil, domain.ErrNotImplemented
	}
	acc, devToken, err := m.requireReady()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "MCC for " + acc.Email
	}

	accessToken, err := m.accessToken(ctx, acc.Email)
	if err != nil {
		m.fail(err)
		return nil, err
	}
	if parentID == "" {
		parentID, err = m.ads.ResolveRootCustomer(ctx, accessToken, devToken)
		if err != nil {
			m.fail(err)
			return nil, err
		}
	}

	req := domain.NewCustomer{
		ParentID:        parentID,
		DescriptiveName: name,
		CurrencyCode:    m.config.Defaults.CurrencyCode,
		TimeZone:        m.config.Defaults.TimeZone,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger.Info("creating child customer %q under %s", name, parentID)
	created, err := m.ads.CreateChildCustomer(ctx, accessToken, devToken, req)
	if err != nil {
		m.fail(err)
		return nil, err
	}

	m.setNotice(fmt.Sprintf("Created %s (%s)", created.Name, created.ID))
	m.refreshInBand(ctx)
	return created, nil
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() domain.ManagerSnapshot {
	var accounts []domain.Account
	var selected *domain.Account
	if m.accounts != nil {
		accounts = m.accounts.Accounts()
		selected = m.accounts.Selected()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := domain.ManagerSnapshot{
		Accounts:        accounts,
		Selected:        selected,
		DeveloperToken:  m.token,
		TokenValidation: m.validation,
		Customers:       append([]domain.Customer(nil), m.customers...),
		Loading:         m.loading,
		Err:             m.err,
		Notice:          m.notice,
	}
	switch {
	case m.loading:
		snap.State = domain.StateRefreshing
	case m.err != nil:
		snap.State = domain.StateError
	case selected == nil:
		snap.State = domain.StateUnauthenticated
	case !m.validation.Valid:
		snap.State = domain.StateAuthenticated
	default:
		snap.State = domain.StateReady
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change.
func (m *Manager) Subscribe(fn func(domain.ManagerSnapshot)) func() {
	return m.subs.add(fn)
}

func (m *Manager) publish() {
	snap := m.Snapshot()
	m.subs.notify(func(fn func(domain.ManagerSnapshot)) { fn(snap) })
}

func (m *Manager) fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
	m.publish()
}

func (m *Manager) setNotice(notice string) {
	m.mu.Lock()
	m.notice = notice
	m.mu.Unlock()
	m.publish()
}

func (m *Manager) selected() *domain.Account {
	if m.accounts == nil {
		return nil
	}
	return m.accounts.Selected()
}

func (m *Manager) canRefresh() bool {
	m.mu.RLock()
	valid := m.validation.Valid
	m.mu.RUnlock()
	return valid && m.selected() != nil && m.identity != nil && m.ads != nil
}

// requireReady returns the selected account and developer token, or an
// error wrapping domain.ErrConfig when either is missing.
func (m *Manager) requireReady() (*domain.Account, string, error) {
	acc := m.selected()
	if acc == nil {
		return nil, "", domain.ErrNoAccountSelected
	}
	m.mu.RLock()
	token, v := m.token, m.validation
	m.mu.RUnlock()
	if !v.Valid {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrInvalidToken, v.Message)
	}
	return acc, token, nil
}

// refreshInBand runs a refresh whose outcome is reported through state.
func (m *Manager) refreshInBand(ctx context.Context) {
	if _, err := m.Refresh(ctx); err != nil {
		logger.Debug("refresh after action failed: %v", err)
	}
}

func (m *Manager) accessToken(ctx context.Context, email string) (string, error) {
	token, err := m.identity.GetToken(ctx, driven.TokenRequest{
		Scopes:  m.config.Scopes,
		Account: email,
	})
	if err != nil {
		return "", fmt.Errorf("access token for %s: %w", email, err)
	}
	return token, nil
}

func (m *Manager) listCustomers(ctx context.Context, email, devToken string) ([]domain.Customer, error) {
	accessToken, err := m.accessToken(ctx, email)
	if err != nil {
		return nil, err
	}
	customers, err := m.ads.ListChildCustomers(ctx, accessToken, devToken)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
