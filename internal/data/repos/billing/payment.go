package billing

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos/identity"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type PaymentRepo interface {
	Create(dbc dbctx.Context, row *domain.PaymentRecord) (*domain.PaymentRecord, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.PaymentRecord, error)
	CountByEmail(dbc dbctx.Context, email string) (int64, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	return &paymentRepo{db: db, log: baseLog.With("repo", "PaymentRepo")}
}

func (r *paymentRepo) Create(dbc dbctx.Context, row *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	row.Email = identity.NormalizeEmail(row.Email)
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *paymentRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.PaymentRecord, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var row domain.PaymentRecord
	if err := dbc.Conn(r.db).Where("email = ?", email).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *paymentRepo) CountByEmail(dbc dbctx.Context, email string) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).
		Model(&domain.PaymentRecord{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&n).Error
	return n, err
}
