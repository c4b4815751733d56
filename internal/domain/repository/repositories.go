package repository

import (
	"context"
	"errors"

	"github.com/ysakata/member-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a write violates the users.email
	// unique constraint.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrVerificationConsumed is returned when a conditional status
	// transition finds the verification row no longer pending.
	ErrVerificationConsumed = errors.New("verification already consumed")
)

// UserRepository defines user persistence. Multi-row operations run inside a
// single transaction in the implementation.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role entity.Role) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateWithProfile inserts the user and its member profile atomically.
	CreateWithProfile(ctx context.Context, u *entity.User, p *entity.MemberProfile) error

	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// ChangeEmail sets the user's email and marks the verification row
	// completed in one transaction. The status transition is conditional on
	// the row still being pending; ErrVerificationConsumed is returned when
	// a concurrent consumer won.
	ChangeEmail(ctx context.Context, userID int64, email string, verificationID int64) error
}

type MemberProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.MemberProfile, error)
	Update(ctx context.Context, p *entity.MemberProfile) error
}

type EmailVerificationRepository interface {
	Create(ctx context.Context, v *entity.EmailVerification) error
	GetByTokenAndEmail(ctx context.Context, token, email string) (*entity.EmailVerification, error)
}
