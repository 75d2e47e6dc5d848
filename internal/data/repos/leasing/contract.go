package leasing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos/identity"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

// ContractRepo is the active contract ledger. It holds no business rules;
// callers enforce the lifecycle.
type ContractRepo interface {
	Create(dbc dbctx.Context, row *domain.ActiveContract) (*domain.ActiveContract, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.ActiveContract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ActiveContract, error)
	SetRent(dbc dbctx.Context, email string, rent float64) (int64, error)
	// ApplyDiscount rewrites rent as rent - rent/percent in one statement.
	ApplyDiscount(dbc dbctx.Context, email string, percent float64) (int64, error)
	SetMonth(dbc dbctx.Context, email string, month string) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByEmail(dbc dbctx.Context, email string) (int64, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: baseLog.With("repo", "ContractRepo")}
}

func (r *contractRepo) Create(dbc dbctx.Context, row *domain.ActiveContract) (*domain.ActiveContract, error) {
	row.Email = identity.NormalizeEmail(row.Email)
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *contractRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.ActiveContract, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var row domain.ActiveContract
	if err := dbc.Conn(r.db).Where("email = ?", email).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ActiveContract, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.ActiveContract
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contractRepo) SetRent(dbc dbctx.Context, email string, rent float64) (int64, error) {
	return r.update(dbc, email, map[string]any{"rent": rent})
}

func (r *contractRepo) ApplyDiscount(dbc dbctx.Context, email string, percent float64) (int64, error) {
	return r.update(dbc, email, map[string]any{"rent": gorm.Expr("rent - rent / ?", percent)})
}

func (r *contractRepo) SetMonth(dbc dbctx.Context, email string, month string) (int64, error) {
	return r.update(dbc, email, map[string]any{"month": month})
}

func (r *contractRepo) update(dbc dbctx.Context, email string, updates map[string]any) (int64, error) {
	updates["updated_at"] = time.Now().UTC()
	res := dbc.Conn(r.db).
		Model(&domain.ActiveContract{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *contractRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&domain.ActiveContract{})
	return res.RowsAffected, res.Error
}

func (r *contractRepo) DeleteByEmail(dbc dbctx.Context, email string) (int64, error) {
	res := dbc.Conn(r.db).
		Where("email = ?", identity.NormalizeEmail(email)).
		Delete(&domain.ActiveContract{})
	return res.RowsAffected, res.Error
}
