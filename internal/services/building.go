package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const (
	DefaultApartmentPage  = 1
	DefaultApartmentLimit = 6
	maxApartmentLimit     = 100
)

// BuildingService serves apartment listings and announcements.
type BuildingService interface {
	ListApartments(ctx context.Context, page, limit int) ([]*domain.Apartment, error)
	CountApartments(ctx context.Context) (int64, error)
	SearchApartments(ctx context.Context, maxRent float64) ([]*domain.Apartment, error)
	ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
}

type buildingService struct {
	log              *logger.Logger
	apartmentRepo    repos.ApartmentRepo
	announcementRepo repos.AnnouncementRepo
}

func NewBuildingService(log *logger.Logger, apartmentRepo repos.ApartmentRepo, announcementRepo repos.AnnouncementRepo) BuildingService {
	return &buildingService{
		log:              log.With("service", "BuildingService"),
		apartmentRepo:    apartmentRepo,
		announcementRepo: announcementRepo,
	}
}

func (bs *buildingService) ListApartments(ctx context.Context, page, limit int) ([]*domain.Apartment, error) {
	if page < 1 {
		page = DefaultApartmentPage
	}
	if limit < 1 {
		limit = DefaultApartmentLimit
	}
	if limit > maxApartmentLimit {
		limit = maxApartmentLimit
	}
	out, err := bs.apartmentRepo.List(dbctx.Context{Ctx: ctx}, (page-1)*limit, limit)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list apartments: %w", err))
	}
	return out, nil
}

func (bs *buildingService) CountApartments(ctx context.Context) (int64, error) {
	n, err := bs.apartmentRepo.Count(dbctx.Context{Ctx: ctx})
	if err != nil {
		return 0, apierr.Internal(fmt.Errorf("count apartments: %w", err))
	}
	return n, nil
}

func (bs *buildingService) SearchApartments(ctx context.Context, maxRent float64) ([]*domain.Apartment, error) {
	out, err := bs.apartmentRepo.ListByMaxRent(dbctx.Context{Ctx: ctx}, maxRent)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("search apartments: %w", err))
	}
	return out, nil
}

func (bs *buildingService) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	out, err := bs.announcementRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list announcements: %w", err))
	}
	return out, nil
}

func (bs *buildingService) CreateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	if a == nil || strings.TrimSpace(a.Title) == "" {
		return nil, apierr.InvalidArgument("title is required")
	}
	a.ID = uuid.Nil
	out, err := bs.announcementRepo.Create(dbctx.Context{Ctx: ctx}, a)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("create announcement: %w", err))
	}
	return out, nil
}
