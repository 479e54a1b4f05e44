package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/logger"

	"github.com/caribelotto/results-backend/internal/apperrors"
	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/pkg/identity"
)

// Sign-in failure subkinds. They all surface under the single
// AuthenticationFailed category; callers that care can unwrap.
var (
	ErrNotAuthorizedAdmin = errors.New("account is not on the admin allow-list")
	ErrSignInSuperseded   = errors.New("sign-in attempt was superseded")
)

// AuthService is the session resolver. It wraps the asynchronous
// identity provider into a tri-state session value, computes the role
// from the injected admin allow-list on every provider event, and
// publishes atomic session snapshots to subscribers.
//
// The session starts Loading and leaves it on the first provider
// callback, never to return. If the provider never calls back the
// session stays Loading indefinitely; that is a documented failure mode
// of the provider, not something the resolver masks with a timeout.
type AuthService struct {
	provider    identity.Provider
	adminEmails map[string]bool

	mu            sync.Mutex
	session       models.Session
	attempt       uint64
	signInAttempt uint64
	listeners     map[int]func(models.Session)
	nextListener  int
}

// NewAuthService creates the resolver with an injected admin allow-list
// and subscribes it to the provider. Allow-list matching is
// case-insensitive; email case is not identity-significant.
func NewAuthService(provider identity.Provider, adminEmails []string) *AuthService {
	s := &AuthService{
		provider:    provider,
		adminEmails: make(map[string]bool, len(adminEmails)),
		session:     models.LoadingSession(),
		listeners:   make(map[int]func(models.Session)),
	}
	for _, email := range adminEmails {
		s.adminEmails[strings.ToLower(email)] = true
	}
	provider.OnSessionChange(s.handleProviderEvent)
	return s
}

// Current returns the session snapshot. Updates are applied under the
// resolver lock, so a torn intermediate session is never observable.
func (s *AuthService) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Subscribe registers a listener for session changes and returns its
// unsubscribe function. The listener is not called with the current
// value; read Current for that.
func (s *AuthService) Subscribe(listener func(models.Session)) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// ResolveRole computes the role for an identified email from the
// allow-list. Used both on provider events and when rebuilding a
// session from a bearer token.
func (s *AuthService) ResolveRole(email string) models.Role {
	if s.adminEmails[strings.ToLower(email)] {
		return models.RoleAdmin
	}
	return models.RoleClient
}

// SignInWithCredentials attempts a provider sign-in. With adminScoped
// set, an identity off the allow-list is signed straight back out and
// the call fails; a partial admin session is never observable. A sign-in
// superseded by a later sign-in or sign-out is discarded the same way,
// so a stale success cannot re-authenticate after an explicit sign-out.
func (s *AuthService) SignInWithCredentials(ctx context.Context, email, password string, adminScoped bool) (models.Session, error) {
	attempt := s.beginSignIn()

	id, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return s.Current(), apperrors.AuthenticationFailedWrap(err, "sign-in failed")
	}

	return s.finishSignIn(ctx, attempt, id, adminScoped)
}

// SignInWithFederated runs the federated flow with the same allow-list
// and staleness enforcement as the credentials flow.
func (s *AuthService) SignInWithFederated(ctx context.Context, adminScoped bool) (models.Session, error) {
	attempt := s.beginSignIn()

	id, err := s.provider.SignInWithFederated(ctx)
	if err != nil {
		return s.Current(), apperrors.AuthenticationFailedWrap(err, "sign-in failed")
	}

	return s.finishSignIn(ctx, attempt, id, adminScoped)
}

// SignOut always forces the local session to Guest, even when the remote
// call fails partway.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.beginAttempt()

	if err := s.provider.SignOut(ctx); err != nil {
		logger.Warningf("remote sign-out failed, forcing local guest state: %v", err)
	}

	// Force Guest locally whether or not the remote call (and its
	// callback) happened. Skip the publish when the provider event
	// already delivered it.
	s.mu.Lock()
	alreadyGuest := s.session.State == models.SessionGuest
	s.session = models.GuestSession()
	s.mu.Unlock()
	if !alreadyGuest {
		s.notify()
	}
	return nil
}

func (s *AuthService) finishSignIn(ctx context.Context, attempt uint64, id *identity.Identity, adminScoped bool) (models.Session, error) {
	if adminScoped && s.ResolveRole(id.Email) != models.RoleAdmin {
		if err := s.provider.SignOut(ctx); err != nil {
			logger.Warningf("rollback sign-out failed for %s: %v", id.Email, err)
		}
		return s.Current(), apperrors.AuthenticationFailedWrap(ErrNotAuthorizedAdmin, "sign-in failed")
	}

	if s.staleAttempt(attempt) {
		if err := s.provider.SignOut(ctx); err != nil {
			logger.Warningf("rollback sign-out failed for superseded attempt: %v", err)
		}
		return s.Current(), apperrors.AuthenticationFailedWrap(ErrSignInSuperseded, "sign-in failed")
	}

	return s.Current(), nil
}

// handleProviderEvent applies one identity-provider callback. This is
// the only transition out of Loading. A success callback raised by a
// sign-in that has since been superseded is discarded outright; it must
// never reach subscribers, not even transiently. Unchanged snapshots are
// not re-published.
func (s *AuthService) handleProviderEvent(id *identity.Identity) {
	s.mu.Lock()
	if id != nil && s.signInAttempt != s.attempt {
		s.mu.Unlock()
		return
	}

	next := models.GuestSession()
	if id != nil {
		next = models.IdentifiedSession(id.Email, s.ResolveRole(id.Email))
	}
	if next == s.session {
		s.mu.Unlock()
		return
	}
	s.session = next
	s.mu.Unlock()
	s.notify()
}

// beginSignIn opens a sign-in attempt. Identified provider callbacks are
// only honored while the attempt that raised them is still the latest.
func (s *AuthService) beginSignIn() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	s.signInAttempt = s.attempt
	return s.attempt
}

func (s *AuthService) beginAttempt() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	return s.attempt
}

func (s *AuthService) staleAttempt(attempt uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt != attempt
}

func (s *AuthService) notify() {
	s.mu.Lock()
	session := s.session
	listeners := make([]func(models.Session), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(session)
	}
}
