// Package identity defines the identity-provider boundary consumed by
// the session service. The provider owns credential verification and
// emits session-change callbacks; role decisions happen elsewhere.
package identity

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/caribelotto/results-backend/internal/models"
)

// Identity is the minimal identity object a provider resolves to.
type Identity struct {
	Email string
}

// Provider is the asynchronous identity boundary. OnSessionChange
// callbacks receive nil for signed-out and a non-nil identity for
// signed-in; the registered callback fires once immediately with the
// current state.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Identity, error)
	SignInWithFederated(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
	OnSessionChange(callback func(*Identity))
}

// AccountStore is the account lookup the store-backed provider needs.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
}

// StoreProvider verifies credentials against persisted accounts with
// bcrypt hashes. Federated sign-in is not configured for this provider;
// callers surface that as an ordinary sign-in failure.
type StoreProvider struct {
	store AccountStore

	mu        sync.Mutex
	current   *Identity
	callbacks []func(*Identity)
}

// NewStoreProvider creates a provider backed by the given account store.
func NewStoreProvider(store AccountStore) *StoreProvider {
	return &StoreProvider{store: store}
}

// SignInWithPassword verifies the credentials and, on success, records
// the identity and notifies session-change subscribers.
func (p *StoreProvider) SignInWithPassword(ctx context.Context, email, password string) (*Identity, error) {
	account, err := p.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	id := &Identity{Email: account.Email}
	p.setCurrent(id)
	return id, nil
}

// SignInWithFederated is not available on the store-backed provider.
func (p *StoreProvider) SignInWithFederated(ctx context.Context) (*Identity, error) {
	return nil, ErrFederatedUnavailable
}

// SignOut clears the current identity and notifies subscribers. It has
// no remote half to fail.
func (p *StoreProvider) SignOut(ctx context.Context) error {
	p.setCurrent(nil)
	return nil
}

// OnSessionChange registers a callback and immediately delivers the
// current state, so late subscribers do not wait for the next event.
func (p *StoreProvider) OnSessionChange(callback func(*Identity)) {
	p.mu.Lock()
	p.callbacks = append(p.callbacks, callback)
	current := p.current
	p.mu.Unlock()

	callback(current)
}

func (p *StoreProvider) setCurrent(id *Identity) {
	p.mu.Lock()
	p.current = id
	callbacks := make([]func(*Identity), len(p.callbacks))
	copy(callbacks, p.callbacks)
	p.mu.Unlock()

	for _, cb := range callbacks {
		cb(id)
	}
}
