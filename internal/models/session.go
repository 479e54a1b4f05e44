package models

// SessionState is the tri-state authentication status of the active
// visitor. Loading exists only between process start and the first
// identity-provider event; it is never re-entered.
type SessionState string

const (
	SessionLoading    SessionState = "LOADING"
	SessionGuest      SessionState = "GUEST"
	SessionIdentified SessionState = "IDENTIFIED"
)

// Role is computed from the admin allow-list on every provider event,
// never stored.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleAdmin  Role = "ADMIN"
)

// Session is a snapshot of the resolver state. Email and Role are only
// meaningful when State is SessionIdentified.
type Session struct {
	State SessionState `json:"state"`
	Email string       `json:"email,omitempty"`
	Role  Role         `json:"role,omitempty"`
}

// LoadingSession is the state before the identity provider has resolved.
func LoadingSession() Session {
	return Session{State: SessionLoading}
}

// GuestSession is the state with no identity.
func GuestSession() Session {
	return Session{State: SessionGuest}
}

// IdentifiedSession builds an authenticated session with the given role.
func IdentifiedSession(email string, role Role) Session {
	return Session{State: SessionIdentified, Email: email, Role: role}
}

// IsAdmin reports whether the session holds an identified admin.
func (s Session) IsAdmin() bool {
	return s.State == SessionIdentified && s.Role == RoleAdmin
}
