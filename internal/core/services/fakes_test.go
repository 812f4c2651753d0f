package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
)

// fakeIdentity returns tokens of the form "token-<email>" for the profile
// at the head of profiles, and records the calls made.
type fakeIdentity struct {
	mu       sync.Mutex
	profiles []domain.Profile
	tokenErr error
	cleared  int
	removed  []string
	requests []driven.TokenRequest
}

func (f *fakeIdentity) GetToken(_ context.Context, req driven.TokenRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if req.Account != "" {
		return "token-" + req.Account, nil
	}
	if len(f.profiles) == 0 {
		return "", domain.ErrAuth
	}
	return "token-" + f.profiles[0].Email, nil
}

func (f *fakeIdentity) ClearCachedTokens(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared++
	return nil
}

func (f *fakeIdentity) RemoveCachedToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, token)
	return nil
}

func (f *fakeIdentity) FetchProfile(_ context.Context, token string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if "token-"+p.Email == token {
			return &p, nil
		}
	}
	return nil, errors.New("unknown token")
}

// use makes the profile for email the current identity.
func (f *fakeIdentity) use(p domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = append([]domain.Profile{p}, f.profiles...)
}

// fakeAds serves canned customers. When gate is set, each ListChildCustomers
// call receives its result from the channel instead.
type fakeAds struct {
	mu        sync.Mutex
	customers []domain.Customer
	listErr   error
	createErr error
	root      string
	created   []domain.NewCustomer
	listCalls int
	gate      chan listResult
	started   chan struct{}
}

type listResult struct {
	customers []domain.Customer
	err       error
}

func (f *fakeAds) ResolveRootCustomer(context.Context, string, string) (string, error) {
	if f.root == "" {
		return "", domain.ErrNoAccessibleCustomers
	}
	return f.root, nil
}

func (f *fakeAds) ListChildCustomers(ctx context.Context, _, _ string) ([]domain.Customer, error) {
	f.mu.Lock()
	f.listCalls++
	gate, started := f.gate, f.started
	customers, err := f.customers, f.listErr
	f.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		select {
		case r := <-gate:
			return r.customers, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return customers, err
}

func (f *fakeAds) CreateChildCustomer(
	_ context.Context, _, _ string, req domain.NewCustomer,
) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	c := domain.Customer{ID: "999", Name: req.DescriptiveName, Type: domain.CustomerTypeCustomer}
	f.customers = append(f.customers, c)
	return &c, nil
}

// failingStore fails every write.
type failingStore struct {
	driven.TokenStore
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

// pointerFailingStore fails only writes of the selection pointer.
type pointerFailingStore struct {
	driven.TokenStore
}

func (s pointerFailingStore) Set(ctx context.Context, key, value string) error {
	if key == domain.KeyLastSelectedAccount {
		return errors.New("disk full")
	}
	return s.TokenStore.Set(ctx, key, value)
}

var (
	alice = domain.Profile{ID: "1", Email: "alice@example.com", Name: "Alice"}
	bob   = domain.Profile{ID: "2", Email: "bob@example.com", Name: "Bob"}
)
