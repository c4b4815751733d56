package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysakata/member-api/internal/domain/entity"
	repo "github.com/ysakata/member-api/internal/domain/repository"
	"github.com/ysakata/member-api/pkg/helpers"
	"github.com/ysakata/member-api/pkg/mailer"
)

const updateEmailURL = "http://front.test/member/profile/basic/mail/update-complete"

type profileFixture struct {
	users         *fakeUserRepo
	profiles      *fakeProfileRepo
	verifications *fakeVerificationRepo
	pub           *fakePublisher
	svc           *ProfileService
	user          *entity.User
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()
	u := memberUser(t, 1, "m@example.com", "password123")
	users := newFakeUserRepo(u)
	profiles := &fakeProfileRepo{profiles: []*entity.MemberProfile{
		{ID: 5, UserID: 1, Nickname: "m", EnrollmentDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	verifications := &fakeVerificationRepo{}
	pub := &fakePublisher{}
	vsvc := NewVerificationService(verifications, testLogger())
	svc := NewProfileService(users, profiles, vsvc, pub, testLogger(), updateEmailURL, true)
	return &profileFixture{users: users, profiles: profiles, verifications: verifications, pub: pub, svc: svc, user: u}
}

func (f *profileFixture) principal() Principal {
	return Principal{UserID: f.user.ID, Email: f.user.Email, Guard: helpers.GuardMember}
}

func TestUpdateProfileOverwritesFields(t *testing.T) {
	f := newProfileFixture(t)

	g := entity.GenderMale
	birth := time.Date(1991, 2, 3, 0, 0, 0, 0, time.UTC)
	p, err := f.svc.UpdateProfile(context.Background(), f.principal(), UpdateProfileInput{
		Nickname:  "renamed",
		Gender:    &g,
		BirthDate: &birth,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", p.Nickname)
	require.NotNil(t, p.Gender)
	assert.Equal(t, entity.GenderMale, *p.Gender)
	require.NotNil(t, f.profiles.updated)

	// Enrollment date is untouched
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), p.EnrollmentDate)
}

func TestUpdateProfileClearsOptionalFields(t *testing.T) {
	f := newProfileFixture(t)
	g := entity.GenderOther
	f.profiles.profiles[0].Gender = &g

	p, err := f.svc.UpdateProfile(context.Background(), f.principal(), UpdateProfileInput{Nickname: "m"})
	require.NoError(t, err)
	assert.Nil(t, p.Gender)
	assert.Nil(t, p.BirthDate)
}

func TestUpdatePassword(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.UpdatePassword(context.Background(), f.principal(), "password123", "new-password-1")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(f.user.Password, "new-password-1"))
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.UpdatePassword(context.Background(), f.principal(), "not-the-password", "new-password-1")
	assert.ErrorIs(t, err, ErrCurrentPasswordMismatch)
	assert.Empty(t, f.users.passwordUpdates)
}

func TestSendUpdateEmailToken(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.SendUpdateEmailToken(context.Background(), f.principal(), "m@example.com", "next@example.com")
	require.NoError(t, err)

	require.Len(t, f.verifications.rows, 1)
	row := f.verifications.rows[0]
	assert.Equal(t, "next@example.com", row.Email)
	assert.Equal(t, entity.StatusSendMailUpdateEmail, row.Status)

	require.Len(t, f.pub.published, 1)
	job, ok := f.pub.published[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "next@example.com", job.To)
	assert.True(t, strings.Contains(job.Text, row.Token))
	assert.True(t, strings.Contains(job.Text, "m様"), "greeting should carry the nickname")
}

func TestSendUpdateEmailTokenCurrentEmailMismatch(t *testing.T) {
	f := newProfileFixture(t)

	err := f.svc.SendUpdateEmailToken(context.Background(), f.principal(), "stale@example.com", "next@example.com")
	assert.ErrorIs(t, err, ErrEmailMismatch)
	assert.Empty(t, f.verifications.rows)
}

func TestSendUpdateEmailTokenNewEmailTaken(t *testing.T) {
	f := newProfileFixture(t)
	f.users.users = append(f.users.users, &entity.User{ID: 2, Email: "next@example.com", Role: entity.RoleMember})

	err := f.svc.SendUpdateEmailToken(context.Background(), f.principal(), "m@example.com", "next@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Empty(t, f.verifications.rows)
}

func TestUpdateEmail(t *testing.T) {
	f := newProfileFixture(t)
	f.verifications.rows = []*entity.EmailVerification{{
		ID: 9, Email: "next@example.com", Token: "tok",
		Status:             entity.StatusSendMailUpdateEmail,
		ExpirationDatetime: time.Now().Add(time.Hour),
	}}

	err := f.svc.UpdateEmail(context.Background(), f.principal(), "tok", "next@example.com")
	require.NoError(t, err)
	assert.Equal(t, "next@example.com", f.user.Email)
}

func TestUpdateEmailTokenErrors(t *testing.T) {
	cases := []struct {
		name    string
		row     *entity.EmailVerification
		wantErr error
	}{
		{
			name:    "unknown token",
			wantErr: ErrTokenNotFound,
		},
		{
			name: "expired",
			row: &entity.EmailVerification{ID: 9, Email: "next@example.com", Token: "tok",
				Status: entity.StatusSendMailUpdateEmail, ExpirationDatetime: time.Now().Add(-time.Minute)},
			wantErr: ErrTokenExpired,
		},
		{
			name: "already applied",
			row: &entity.EmailVerification{ID: 9, Email: "next@example.com", Token: "tok",
				Status: entity.StatusCompletedUpdateEmail, ExpirationDatetime: time.Now().Add(time.Hour)},
			wantErr: ErrAlreadyApplied,
		},
		{
			name: "register token rejected",
			row: &entity.EmailVerification{ID: 9, Email: "next@example.com", Token: "tok",
				Status: entity.StatusSendMailRegister, ExpirationDatetime: time.Now().Add(time.Hour)},
			wantErr: ErrStatusMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newProfileFixture(t)
			if tc.row != nil {
				f.verifications.rows = []*entity.EmailVerification{tc.row}
			}
			err := f.svc.UpdateEmail(context.Background(), f.principal(), "tok", "next@example.com")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, "m@example.com", f.user.Email)
		})
	}
}

func TestUpdateEmailConsumedRace(t *testing.T) {
	f := newProfileFixture(t)
	f.verifications.rows = []*entity.EmailVerification{{
		ID: 9, Email: "next@example.com", Token: "tok",
		Status:             entity.StatusSendMailUpdateEmail,
		ExpirationDatetime: time.Now().Add(time.Hour),
	}}
	f.users.changeEmailErr = repo.ErrVerificationConsumed

	err := f.svc.UpdateEmail(context.Background(), f.principal(), "tok", "next@example.com")
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestMutationsRejectNonMemberPrincipal(t *testing.T) {
	f := newProfileFixture(t)
	f.user.Role = entity.RoleAdmin

	err := f.svc.UpdatePassword(context.Background(), f.principal(), "password123", "new-password-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = f.svc.SendUpdateEmailToken(context.Background(), f.principal(), "m@example.com", "next@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
