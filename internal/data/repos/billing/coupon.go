package billing

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type CouponRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Coupon) ([]*domain.Coupon, error)
	List(dbc dbctx.Context) ([]*domain.Coupon, error)
	GetByCode(dbc dbctx.Context, code string) (*domain.Coupon, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Coupon, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type couponRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCouponRepo(db *gorm.DB, baseLog *logger.Logger) CouponRepo {
	return &couponRepo{db: db, log: baseLog.With("repo", "CouponRepo")}
}

func (r *couponRepo) Create(dbc dbctx.Context, rows []*domain.Coupon) ([]*domain.Coupon, error) {
	if len(rows) == 0 {
		return []*domain.Coupon{}, nil
	}
	for _, c := range rows {
		c.Code = NormalizeCode(c.Code)
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *couponRepo) List(dbc dbctx.Context) ([]*domain.Coupon, error) {
	var out []*domain.Coupon
	if err := dbc.Conn(r.db).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *couponRepo) GetByCode(dbc dbctx.Context, code string) (*domain.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil
	}
	var row domain.Coupon
	if err := dbc.Conn(r.db).Where("code = ?", code).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *couponRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Coupon, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Coupon
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *couponRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&domain.Coupon{})
	return res.RowsAffected, res.Error
}

// Codes are matched case-insensitively.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
