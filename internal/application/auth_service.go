package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ysakata/member-api/internal/domain/entity"
	repo "github.com/ysakata/member-api/internal/domain/repository"
	"github.com/ysakata/member-api/pkg/helpers"
)

// AuthService establishes and tears down member sessions. Sessions live in
// Redis keyed by user; the signed cookie only points at them.
type AuthService struct {
	Users    repo.UserRepository
	Profiles repo.MemberProfileRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Logger   *logrus.Logger

	SessionTTL time.Duration
}

func NewAuthService(users repo.UserRepository, profiles repo.MemberProfileRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		Users:      users,
		Profiles:   profiles,
		JWT:        jwt,
		Redis:      rdb,
		Logger:     logger,
		SessionTTL: sessionTTL,
	}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Login verifies credentials against the member login path and establishes a
// fresh session. The role filter blocks ADMIN accounts here by design.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Users.GetByEmailAndRole(ctx, email, entity.RoleMember)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, ErrInvalidCredentials
		}
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, ErrInvalidCredentials
	}

	sess, err := s.establishSession(ctx, u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// establishSession rotates the session id: the stored sid replaces whatever
// was there before, so tokens issued for earlier sessions stop validating.
func (s *AuthService) establishSession(ctx context.Context, u *entity.User) (Session, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateSessionToken(u.ID, sid, helpers.GuardMember)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		}
		return Session{}, err
	}

	if s.Redis != nil {
		key := helpers.MemberSessionKey(u.ID)
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			if s.Logger != nil {
				s.Logger.WithError(rErr).WithField("key", key).Error("store session failed")
			}
			return Session{}, rErr
		}
	}

	return Session{Token: token, ExpiresAt: exp}, nil
}

// Logout drops the session hash; any outstanding token dangles.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, helpers.MemberSessionKey(userID)).Err()
}

// CurrentUser loads the authenticated user and its profile for the
// session-check endpoint.
func (s *AuthService) CurrentUser(ctx context.Context, pr Principal) (*entity.User, *entity.MemberProfile, error) {
	u, err := s.Users.GetByID(ctx, pr.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	p, err := s.Profiles.GetByUserID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return u, nil, nil
		}
		return nil, nil, err
	}
	return u, p, nil
}
