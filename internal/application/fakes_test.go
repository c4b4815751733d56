package application

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ysakata/member-api/internal/domain/entity"
	repo "github.com/ysakata/member-api/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	users  []*entity.User
	nextID int64

	createErr      error
	changeEmailErr error

	passwordUpdates map[int64]string
	createdProfiles []*entity.MemberProfile
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{passwordUpdates: map[int64]string{}, nextID: 1}
	for _, u := range users {
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
		f.users = append(f.users, u)
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmailAndRole(_ context.Context, email string, role entity.Role) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.Role == role {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CreateWithProfile(_ context.Context, u *entity.User, p *entity.MemberProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	p.UserID = u.ID
	f.users = append(f.users, u)
	f.createdProfiles = append(f.createdProfiles, p)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	f.passwordUpdates[userID] = passwordHash
	for _, u := range f.users {
		if u.ID == userID {
			u.Password = passwordHash
		}
	}
	return nil
}

func (f *fakeUserRepo) ChangeEmail(_ context.Context, userID int64, email string, _ int64) error {
	if f.changeEmailErr != nil {
		return f.changeEmailErr
	}
	for _, u := range f.users {
		if u.ID == userID {
			u.Email = email
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeProfileRepo struct {
	profiles []*entity.MemberProfile
	updated  *entity.MemberProfile
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*entity.MemberProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.MemberProfile) error {
	f.updated = p
	return nil
}

type fakeVerificationRepo struct {
	rows   []*entity.EmailVerification
	nextID int64
}

func (f *fakeVerificationRepo) Create(_ context.Context, v *entity.EmailVerification) error {
	f.nextID++
	v.ID = f.nextID
	f.rows = append(f.rows, v)
	return nil
}

func (f *fakeVerificationRepo) GetByTokenAndEmail(_ context.Context, token, email string) (*entity.EmailVerification, error) {
	for _, v := range f.rows {
		if v.Token == token && v.Email == email {
			return v, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakePublisher struct {
	published []any
	err       error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	return nil
}
