package services

import "errors"

// Every failure a service can surface belongs to one of these classes.
// Controllers translate them to HTTP statuses at the boundary; nothing
// below the controllers knows about status codes.
var (
	// ErrNoFile is returned when attachment creation is attempted without
	// a file payload.
	ErrNoFile = errors.New("no file uploaded")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials is returned on a failed password check.
	ErrInvalidCredentials = errors.New("invalid password")

	// ErrStore is returned on a relational store failure.
	ErrStore = errors.New("store failure")

	// ErrUpload is returned when the blob store rejects an upload. No
	// relational write has happened at that point.
	ErrUpload = errors.New("upload failure")

	// ErrPersistence is returned when the relational insert fails after
	// the blob was already uploaded. The blob is left in place.
	ErrPersistence = errors.New("persistence failure after upload")

	// ErrNoSigningSecret is returned when token issuance is attempted
	// without a configured signing secret.
	ErrNoSigningSecret = errors.New("no signing secret configured")
)
