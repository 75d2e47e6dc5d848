package identity

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*domain.User) ([]*domain.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error)
	ListByRole(dbc dbctx.Context, role domain.Role) ([]*domain.User, error)
	UpdateRoleByEmail(dbc dbctx.Context, email string, role domain.Role) (int64, error)
	UpdateRoleByID(dbc dbctx.Context, id uuid.UUID, role domain.Role) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, users []*domain.User) ([]*domain.User, error) {
	if len(users) == 0 {
		return []*domain.User{}, nil
	}
	for _, u := range users {
		u.Email = NormalizeEmail(u.Email)
	}
	if err := dbc.Conn(r.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var row domain.User
	if err := dbc.Conn(r.db).Where("email = ?", email).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.User
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userRepo) ListByRole(dbc dbctx.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	if err := dbc.Conn(r.db).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *userRepo) UpdateRoleByEmail(dbc dbctx.Context, email string, role domain.Role) (int64, error) {
	res := dbc.Conn(r.db).
		Model(&domain.User{}).
		Where("email = ?", NormalizeEmail(email)).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (r *userRepo) UpdateRoleByID(dbc dbctx.Context, id uuid.UUID, role domain.Role) (int64, error) {
	res := dbc.Conn(r.db).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("role", role)
	return res.RowsAffected, res.Error
}

// NormalizeEmail is the canonical form of an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
