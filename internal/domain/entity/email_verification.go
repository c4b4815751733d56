package entity

import "time"

// EmailVerification is the ephemeral token record backing email-ownership
// proofs. Rows are appended and status-transitioned, never deleted; multiple
// historical rows may exist for the same email, but at most one should be
// currently valid (non-expired, non-completed).
type EmailVerification struct {
	ID                 int64
	Email              string
	Token              string
	Status             VerificationStatus
	ExpirationDatetime time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Expired reports whether the record is past its expiry at the given time.
// The boundary counts as expired.
func (v *EmailVerification) Expired(now time.Time) bool {
	return !v.ExpirationDatetime.After(now)
}

type VerificationStatus int16

const (
	StatusSendMailRegister VerificationStatus = iota + 1
	StatusCompletedRegister
	StatusSendMailForgotPassword
	StatusCompletedForgotPassword
	StatusSendMailUpdateEmail
	StatusCompletedUpdateEmail
)

// VerificationPurpose names a verification workflow. Each purpose owns a
// pending/completed status pair; validation is purpose-scoped so a token
// issued for one workflow cannot be consumed by another.
type VerificationPurpose int

const (
	PurposeRegister VerificationPurpose = iota + 1
	PurposeUpdateEmail
	PurposeForgotPassword
)

// Pending returns the status written when a token is issued for the purpose.
func (p VerificationPurpose) Pending() VerificationStatus {
	switch p {
	case PurposeRegister:
		return StatusSendMailRegister
	case PurposeUpdateEmail:
		return StatusSendMailUpdateEmail
	case PurposeForgotPassword:
		return StatusSendMailForgotPassword
	default:
		return 0
	}
}

// Completed returns the terminal status for the purpose.
func (p VerificationPurpose) Completed() VerificationStatus {
	switch p {
	case PurposeRegister:
		return StatusCompletedRegister
	case PurposeUpdateEmail:
		return StatusCompletedUpdateEmail
	case PurposeForgotPassword:
		return StatusCompletedForgotPassword
	default:
		return 0
	}
}
