package building

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type AnnouncementRepo interface {
	Create(dbc dbctx.Context, row *domain.Announcement) (*domain.Announcement, error)
	List(dbc dbctx.Context) ([]*domain.Announcement, error)
}

type announcementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	return &announcementRepo{db: db, log: baseLog.With("repo", "AnnouncementRepo")}
}

func (r *announcementRepo) Create(dbc dbctx.Context, row *domain.Announcement) (*domain.Announcement, error) {
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *announcementRepo) List(dbc dbctx.Context) ([]*domain.Announcement, error) {
	var out []*domain.Announcement
	if err := dbc.Conn(r.db).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
