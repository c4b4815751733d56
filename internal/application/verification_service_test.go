package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ysakata/member-api/internal/domain/entity"
)

func TestIssuePersistsPendingRow(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := NewVerificationService(repo, testLogger())
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	token, err := svc.Issue(context.Background(), "new@example.com", entity.PurposeRegister)
	require.NoError(t, err)
	assert.Len(t, token, TokenLength)

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, "new@example.com", row.Email)
	assert.Equal(t, token, row.Token)
	assert.Equal(t, entity.StatusSendMailRegister, row.Status)
	assert.Equal(t, now.Add(TokenTTL), row.ExpirationDatetime)
}

func TestIssueKeepsHistoricalRows(t *testing.T) {
	repo := &fakeVerificationRepo{}
	svc := NewVerificationService(repo, testLogger())

	_, err := svc.Issue(context.Background(), "new@example.com", entity.PurposeRegister)
	require.NoError(t, err)
	_, err = svc.Issue(context.Background(), "new@example.com", entity.PurposeRegister)
	require.NoError(t, err)

	assert.Len(t, repo.rows, 2)
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	valid := now.Add(time.Hour)
	passed := now.Add(-time.Minute)

	cases := []struct {
		name    string
		row     *entity.EmailVerification
		token   string
		email   string
		purpose entity.VerificationPurpose
		wantErr error
	}{
		{
			name:    "unknown token",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: valid},
			token:   "other",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrTokenNotFound,
		},
		{
			name:    "wrong email",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: valid},
			token:   "tok",
			email:   "b@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrTokenNotFound,
		},
		{
			name:    "expired",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: passed},
			token:   "tok",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrTokenExpired,
		},
		{
			name:    "expired wins over completed",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusCompletedRegister, ExpirationDatetime: passed},
			token:   "tok",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrTokenExpired,
		},
		{
			name:    "already applied",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusCompletedRegister, ExpirationDatetime: valid},
			token:   "tok",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrAlreadyApplied,
		},
		{
			name:    "purpose mismatch",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailUpdateEmail, ExpirationDatetime: valid},
			token:   "tok",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
			wantErr: ErrStatusMismatch,
		},
		{
			name:    "valid",
			row:     &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: valid},
			token:   "tok",
			email:   "a@example.com",
			purpose: entity.PurposeRegister,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeVerificationRepo{rows: []*entity.EmailVerification{tc.row}}
			svc := NewVerificationService(repo, testLogger())
			svc.now = func() time.Time { return now }

			email, err := svc.Validate(context.Background(), tc.token, tc.email, tc.purpose)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.email, email)
		})
	}
}

func TestValidateBoundaryIsExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeVerificationRepo{rows: []*entity.EmailVerification{
		{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: now},
	}}
	svc := NewVerificationService(repo, testLogger())
	svc.now = func() time.Time { return now }

	_, err := svc.Validate(context.Background(), "tok", "a@example.com", entity.PurposeRegister)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateIsPureRead(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	row := &entity.EmailVerification{Token: "tok", Email: "a@example.com", Status: entity.StatusSendMailRegister, ExpirationDatetime: now.Add(time.Hour)}
	repo := &fakeVerificationRepo{rows: []*entity.EmailVerification{row}}
	svc := NewVerificationService(repo, testLogger())
	svc.now = func() time.Time { return now }

	_, err := svc.Validate(context.Background(), "tok", "a@example.com", entity.PurposeRegister)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSendMailRegister, row.Status)

	// Validating twice succeeds; only consumption transitions the row
	_, err = svc.Validate(context.Background(), "tok", "a@example.com", entity.PurposeRegister)
	assert.NoError(t, err)
}
