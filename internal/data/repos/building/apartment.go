package building

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type ApartmentRepo interface {
	// Upsert inserts apartments, skipping apartment numbers already listed.
	Upsert(dbc dbctx.Context, rows []*domain.Apartment) (int64, error)
	List(dbc dbctx.Context, offset, limit int) ([]*domain.Apartment, error)
	Count(dbc dbctx.Context) (int64, error)
	ListByMaxRent(dbc dbctx.Context, maxRent float64) ([]*domain.Apartment, error)
}

type apartmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApartmentRepo(db *gorm.DB, baseLog *logger.Logger) ApartmentRepo {
	return &apartmentRepo{db: db, log: baseLog.With("repo", "ApartmentRepo")}
}

func (r *apartmentRepo) Upsert(dbc dbctx.Context, rows []*domain.Apartment) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.Conn(r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "apartment_no"}}, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *apartmentRepo) List(dbc dbctx.Context, offset, limit int) ([]*domain.Apartment, error) {
	var out []*domain.Apartment
	if err := dbc.Conn(r.db).
		Order("apartment_no ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *apartmentRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.Conn(r.db).Model(&domain.Apartment{}).Count(&n).Error
	return n, err
}

func (r *apartmentRepo) ListByMaxRent(dbc dbctx.Context, maxRent float64) ([]*domain.Apartment, error) {
	var out []*domain.Apartment
	if err := dbc.Conn(r.db).
		Where("rent <= ?", maxRent).
		Order("rent ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
