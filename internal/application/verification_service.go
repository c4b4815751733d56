package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ysakata/member-api/internal/domain/entity"
	repo "github.com/ysakata/member-api/internal/domain/repository"
	"github.com/ysakata/member-api/pkg/helpers"
)

const (
	// TokenLength is fixed at 250 characters; uniqueness is probabilistic,
	// no storage-level constraint backs it.
	TokenLength = 250
	// TokenTTL is the fixed validity window for every issued token.
	TokenTTL = time.Hour
)

// VerificationService owns the email-verification token lifecycle: issuing
// tokens and validating them purpose-scoped. It never transitions a token to
// completed; that belongs to the action consuming it, in the same
// transaction as the dependent write.
type VerificationService struct {
	Verifications repo.EmailVerificationRepository
	Logger        *logrus.Logger

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewVerificationService(verifications repo.EmailVerificationRepository, logger *logrus.Logger) *VerificationService {
	return &VerificationService{Verifications: verifications, Logger: logger, now: time.Now}
}

// Issue persists a new pending verification row for the purpose and returns
// the raw token. One row per call; historical rows for the same email are
// left untouched.
func (s *VerificationService) Issue(ctx context.Context, email string, purpose entity.VerificationPurpose) (string, error) {
	token, err := helpers.RandomToken(TokenLength)
	if err != nil {
		return "", err
	}

	v := &entity.EmailVerification{
		Email:              email,
		Token:              token,
		Status:             purpose.Pending(),
		ExpirationDatetime: s.now().Add(TokenTTL),
	}
	if err := s.Verifications.Create(ctx, v); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create email verification failed")
		}
		return "", err
	}
	return token, nil
}

// Validate checks a presented (token, email) pair against the purpose and
// returns the verified email. It is a pure read.
func (s *VerificationService) Validate(ctx context.Context, token, email string, purpose entity.VerificationPurpose) (string, error) {
	v, err := s.ValidateRow(ctx, token, email, purpose)
	if err != nil {
		return "", err
	}
	return v.Email, nil
}

// ValidateRow is Validate for callers that need the row itself, typically to
// consume it afterwards. The check order is fixed: lookup, expiry,
// already-applied, status mismatch. Expiry takes precedence over status so an
// expired-but-completed token reports expired.
func (s *VerificationService) ValidateRow(ctx context.Context, token, email string, purpose entity.VerificationPurpose) (*entity.EmailVerification, error) {
	v, err := s.Verifications.GetByTokenAndEmail(ctx, token, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if v.Expired(s.now()) {
		return nil, ErrTokenExpired
	}
	if v.Status == purpose.Completed() {
		return nil, ErrAlreadyApplied
	}
	if v.Status != purpose.Pending() {
		return nil, ErrStatusMismatch
	}

	return v, nil
}
