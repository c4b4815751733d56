package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ysakata/member-api/internal/domain/entity"
	repo "github.com/ysakata/member-api/internal/domain/repository"
	"github.com/ysakata/member-api/pkg/helpers"
	"github.com/ysakata/member-api/pkg/mailer"
)

// ProfileService performs authenticated self-service mutations under the
// owning member principal.
type ProfileService struct {
	Users         repo.UserRepository
	Profiles      repo.MemberProfileRepository
	Verifications *VerificationService
	Pub           MailPublisher
	Logger        *logrus.Logger

	UpdateEmailURL  string
	MailSendEnabled bool
}

func NewProfileService(users repo.UserRepository, profiles repo.MemberProfileRepository, verifications *VerificationService, pub MailPublisher, logger *logrus.Logger, updateEmailURL string, mailSendEnabled bool) *ProfileService {
	return &ProfileService{
		Users:           users,
		Profiles:        profiles,
		Verifications:   verifications,
		Pub:             pub,
		Logger:          logger,
		UpdateEmailURL:  updateEmailURL,
		MailSendEnabled: mailSendEnabled,
	}
}

type UpdateProfileInput struct {
	Nickname  string
	Gender    *entity.Gender
	BirthDate *time.Time
}

// UpdateProfile overwrites the profile's mutable fields and returns the
// updated profile. Enrollment date is not client-mutable.
func (s *ProfileService) UpdateProfile(ctx context.Context, pr Principal, in UpdateProfileInput) (*entity.MemberProfile, error) {
	p, err := s.Profiles.GetByUserID(ctx, pr.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p.Nickname = in.Nickname
	p.Gender = in.Gender
	p.BirthDate = in.BirthDate
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePassword verifies the current password before replacing the hash.
func (s *ProfileService) UpdatePassword(ctx context.Context, pr Principal, currentPassword, newPassword string) error {
	u, err := s.memberByID(ctx, pr.UserID)
	if err != nil {
		return err
	}

	if !helpers.CompareHashAndPassword(u.Password, currentPassword) {
		return ErrCurrentPasswordMismatch
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, u.ID, hash)
}

// SendUpdateEmailToken issues an update-email token for the new address and
// mails it there. The caller-supplied current email must equal the
// principal's stored address, so a stale client cannot redirect a
// verification email for an account it no longer matches.
func (s *ProfileService) SendUpdateEmailToken(ctx context.Context, pr Principal, currentEmail, newEmail string) error {
	u, err := s.memberByID(ctx, pr.UserID)
	if err != nil {
		return err
	}
	if u.Email != currentEmail {
		return ErrEmailMismatch
	}

	taken, err := s.Users.ExistsByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}

	token, err := s.Verifications.Issue(ctx, newEmail, entity.PurposeUpdateEmail)
	if err != nil {
		return err
	}

	if s.Pub == nil || !s.MailSendEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", newEmail).Debug("mail sending disabled; skipping update email")
		}
		return nil
	}

	nickname := ""
	if p, err := s.Profiles.GetByUserID(ctx, u.ID); err == nil {
		nickname = p.Nickname
	}
	job := mailer.NewUpdateEmailJob(newEmail, token, nickname, s.UpdateEmailURL)
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", newEmail).Error("enqueue update email failed")
		}
		return err
	}
	return nil
}

// UpdateEmail swaps the user's email to the verified address and completes
// the verification row in one transaction. The token is re-validated here
// even when the client already called the read-only check, and the
// conditional status update inside ChangeEmail guards against double-submits
// racing that validation.
func (s *ProfileService) UpdateEmail(ctx context.Context, pr Principal, token, email string) error {
	u, err := s.memberByID(ctx, pr.UserID)
	if err != nil {
		return err
	}

	v, err := s.Verifications.ValidateRow(ctx, token, email, entity.PurposeUpdateEmail)
	if err != nil {
		return err
	}

	if err := s.Users.ChangeEmail(ctx, u.ID, email, v.ID); err != nil {
		switch {
		case errors.Is(err, repo.ErrVerificationConsumed):
			return ErrAlreadyApplied
		case errors.Is(err, repo.ErrDuplicateEmail):
			return ErrEmailTaken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("change email failed")
		}
		return err
	}
	return nil
}

// memberByID loads the principal's user row, enforcing the member role gate
// on every mutation.
func (s *ProfileService) memberByID(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role != entity.RoleMember {
		return nil, ErrUserNotFound
	}
	return u, nil
}
