package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ysakata/member-api/internal/domain/entity"
	"github.com/ysakata/member-api/internal/domain/repository"
)

type MemberProfileRepository struct {
	pool *pgxpool.Pool
}

func NewMemberProfileRepository(pool *pgxpool.Pool) *MemberProfileRepository {
	return &MemberProfileRepository{pool: pool}
}

func (r *MemberProfileRepository) GetByUserID(ctx context.Context, userID int64) (*entity.MemberProfile, error) {
	p := &entity.MemberProfile{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, nickname, gender, birth_date, enrollment_date, created_at, updated_at
		FROM member_profiles
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&p.ID, &p.UserID, &p.Nickname, &p.Gender, &p.BirthDate,
		&p.EnrollmentDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *MemberProfileRepository) Update(ctx context.Context, p *entity.MemberProfile) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE member_profiles
		SET nickname = $1, gender = $2, birth_date = $3, enrollment_date = $4, updated_at = $5
		WHERE id = $6
	`, p.Nickname, p.Gender, p.BirthDate, p.EnrollmentDate, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.MemberProfileRepository = (*MemberProfileRepository)(nil)
