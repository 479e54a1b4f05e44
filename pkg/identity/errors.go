package identity

import "errors"

var (
	// ErrInvalidCredentials covers unknown accounts and bad passwords
	// alike; the provider does not reveal which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrFederatedUnavailable is returned by providers with no federated
	// backend configured.
	ErrFederatedUnavailable = errors.New("federated sign-in is not configured")
)
