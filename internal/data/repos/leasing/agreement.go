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

type AgreementRepo interface {
	Create(dbc dbctx.Context, row *domain.AgreementRequest) (*domain.AgreementRequest, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.AgreementRequest, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.AgreementRequest, error)
	List(dbc dbctx.Context) ([]*domain.AgreementRequest, error)
	MarkChecked(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteByEmail(dbc dbctx.Context, email string) (int64, error)
}

type agreementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgreementRepo(db *gorm.DB, baseLog *logger.Logger) AgreementRepo {
	return &agreementRepo{db: db, log: baseLog.With("repo", "AgreementRepo")}
}

func (r *agreementRepo) Create(dbc dbctx.Context, row *domain.AgreementRequest) (*domain.AgreementRequest, error) {
	row.Email = identity.NormalizeEmail(row.Email)
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *agreementRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.AgreementRequest, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.AgreementRequest
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *agreementRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.AgreementRequest, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var row domain.AgreementRequest
	if err := dbc.Conn(r.db).Where("email = ?", email).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *agreementRepo) List(dbc dbctx.Context) ([]*domain.AgreementRequest, error) {
	var out []*domain.AgreementRequest
	if err := dbc.Conn(r.db).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *agreementRepo) MarkChecked(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).
		Model(&domain.AgreementRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     domain.AgreementStatusChecked,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *agreementRepo) DeleteByEmail(dbc dbctx.Context, email string) (int64, error) {
	res := dbc.Conn(r.db).
		Where("email = ?", identity.NormalizeEmail(email)).
		Delete(&domain.AgreementRequest{})
	return res.RowsAffected, res.Error
}
