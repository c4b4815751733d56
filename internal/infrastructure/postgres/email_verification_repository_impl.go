package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysakata/member-api/internal/domain/entity"
	"github.com/ysakata/member-api/internal/domain/repository"
)

type EmailVerificationRepository struct {
	pool *pgxpool.Pool
}

func NewEmailVerificationRepository(pool *pgxpool.Pool) *EmailVerificationRepository {
	return &EmailVerificationRepository{pool: pool}
}

func (r *EmailVerificationRepository) Create(ctx context.Context, v *entity.EmailVerification) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO email_verifications (email, token, status, expiration_datetime)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, v.Email, v.Token, v.Status, v.ExpirationDatetime)
	return row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// GetByTokenAndEmail looks up by the exact (token, email) pair. Token alone
// is never a key.
func (r *EmailVerificationRepository) GetByTokenAndEmail(ctx context.Context, token, email string) (*entity.EmailVerification, error) {
	v := &entity.EmailVerification{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, token, status, expiration_datetime, created_at, updated_at
		FROM email_verifications
		WHERE token = $1 AND email = $2
	`, token, email)
	if err := row.Scan(&v.ID, &v.Email, &v.Token, &v.Status, &v.ExpirationDatetime,
		&v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

var _ repository.EmailVerificationRepository = (*EmailVerificationRepository)(nil)
