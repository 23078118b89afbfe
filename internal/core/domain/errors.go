package domain

import "errors"

// Photo store errors
var (
	ErrStorageUnavailable = errors.New("photo storage unavailable")
	ErrSourceNotFound     = errors.New("capture source not found")
	ErrMoveFailed         = errors.New("failed to move capture into storage")
	ErrIdentityCollision  = errors.New("a photo with the same identity already exists")
	ErrPhotoNotFound      = errors.New("photo not found")
)

// Relay errors
var (
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrMailerNotConfigured = errors.New("email provider is not configured")
	ErrProviderFailed      = errors.New("email provider error")
	ErrRelayFailed         = errors.New("relay request failed")
	ErrNoRecipients        = errors.New("no recipients configured")
)
