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

// MailPublisher enqueues rendered email jobs. Satisfied by
// helpers.RabbitPublisher; delivery itself is the worker's problem.
type MailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegistrationService handles provisional (email-verified) registration and
// account creation.
type RegistrationService struct {
	Users         repo.UserRepository
	Verifications *VerificationService
	Pub           MailPublisher
	Logger        *logrus.Logger

	RegisterURL     string
	MailSendEnabled bool
}

func NewRegistrationService(users repo.UserRepository, verifications *VerificationService, pub MailPublisher, logger *logrus.Logger, registerURL string, mailSendEnabled bool) *RegistrationService {
	return &RegistrationService{
		Users:           users,
		Verifications:   verifications,
		Pub:             pub,
		Logger:          logger,
		RegisterURL:     registerURL,
		MailSendEnabled: mailSendEnabled,
	}
}

// ProvisionalRegister issues a registration token for the address and
// enqueues the completion email. Addresses already registered are rejected
// before any row is written.
func (s *RegistrationService) ProvisionalRegister(ctx context.Context, email string) error {
	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	token, err := s.Verifications.Issue(ctx, email, entity.PurposeRegister)
	if err != nil {
		return err
	}

	return s.enqueueRegisterMail(ctx, email, token)
}

func (s *RegistrationService) enqueueRegisterMail(ctx context.Context, email, token string) error {
	if s.Pub == nil || !s.MailSendEnabled {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("mail sending disabled; skipping register email")
		}
		return nil
	}
	job := mailer.NewRegisterEmailJob(email, token, s.RegisterURL)
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("enqueue register email failed")
		}
		return err
	}
	return nil
}

type RegisterInput struct {
	Email          string
	Password       string
	Nickname       string
	Gender         *entity.Gender
	BirthDate      *time.Time
	EnrollmentDate time.Time
}

// Register creates the user identity and its member profile in one
// transaction. A duplicate email that slipped past request validation
// surfaces as ErrEmailTaken from the storage unique constraint.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) error {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}

	u := &entity.User{
		Email:    in.Email,
		Password: hash,
		Role:     entity.RoleMember,
	}
	p := &entity.MemberProfile{
		Nickname:       in.Nickname,
		Gender:         in.Gender,
		BirthDate:      in.BirthDate,
		EnrollmentDate: in.EnrollmentDate,
	}

	if err := s.Users.CreateWithProfile(ctx, u, p); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return ErrEmailTaken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", in.Email).Error("create member failed")
		}
		return err
	}
	return nil
}

// EmailRegistered reports whether the address already belongs to a user.
// Exposed for request-level duplicate validation.
func (s *RegistrationService) EmailRegistered(ctx context.Context, email string) (bool, error) {
	return s.Users.ExistsByEmail(ctx, email)
}
