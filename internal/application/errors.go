package application

import "errors"

// Failure taxonomy surfaced to the HTTP boundary. Handlers map these to
// status codes and envelopes; storage errors never pass through verbatim.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the login path cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCurrentPasswordMismatch is the password-change counterpart; the
	// caller is already authenticated so the specific field can be named.
	ErrCurrentPasswordMismatch = errors.New("current password does not match")

	// ErrEmailMismatch rejects a stale or forged current-email claim on the
	// email-change token request.
	ErrEmailMismatch = errors.New("email does not match")

	// ErrEmailTaken is returned when the address already belongs to a user.
	ErrEmailTaken = errors.New("email already in use")

	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("member profile not found")

	// Token lifecycle failures, in validation precedence order.
	ErrTokenNotFound  = errors.New("verification token not found")
	ErrTokenExpired   = errors.New("verification token expired")
	ErrAlreadyApplied = errors.New("verification already applied")
	ErrStatusMismatch = errors.New("verification status mismatch")
)
