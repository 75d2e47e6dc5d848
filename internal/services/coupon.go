package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/clients/redis"
	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const (
	MsgCouponNotFound   = "Coupon code not found"
	MsgContractNotFound = "No active contract"
)

// CouponService manages coupons and applies them to active contracts.
//
// ApplyCoupon is not idempotent: each call discounts the current rent, so a
// second application compounds on the already reduced figure.
type CouponService interface {
	ApplyCoupon(ctx context.Context, email, code string) (*domain.ActiveContract, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type couponService struct {
	db           *gorm.DB
	log          *logger.Logger
	couponRepo   repos.CouponRepo
	contractRepo repos.ContractRepo
	cache        redis.CouponCache
}

// NewCouponService wires the resolver. cache may be nil.
func NewCouponService(
	db *gorm.DB,
	log *logger.Logger,
	couponRepo repos.CouponRepo,
	contractRepo repos.ContractRepo,
	cache redis.CouponCache,
) CouponService {
	return &couponService{
		db:           db,
		log:          log.With("service", "CouponService"),
		couponRepo:   couponRepo,
		contractRepo: contractRepo,
		cache:        cache,
	}
}

// resolve looks code up in the cache, then the database. fromDB reports a
// cache miss; the caller fills the cache once its transaction is done.
func (cs *couponService) resolve(dbc dbctx.Context, code string) (_ *domain.Coupon, fromDB bool, _ error) {
	if cs.cache != nil {
		c, ok, err := cs.cache.Get(dbc.Ctx, code)
		if err != nil {
			cs.log.Warn("coupon cache read failed", "error", err)
		} else {
			observability.Current().IncCouponCache(ok)
			if ok {
				return c, false, nil
			}
		}
	}
	c, err := cs.couponRepo.GetByCode(dbc, code)
	if err != nil {
		return nil, false, err
	}
	return c, c != nil, nil
}

// fillCache writes c, then re-reads the row. A Delete that committed between
// the original read and the write is caught by the re-read and the entry is
// dropped again.
func (cs *couponService) fillCache(ctx context.Context, c *domain.Coupon) {
	if cs.cache == nil || c == nil {
		return
	}
	if err := cs.cache.Set(ctx, c); err != nil {
		cs.log.Warn("coupon cache write failed", "error", err)
		return
	}
	still, err := cs.couponRepo.GetByID(dbctx.Context{Ctx: ctx}, c.ID)
	if err == nil && still != nil {
		return
	}
	if err := cs.cache.Invalidate(ctx, c.Code); err != nil {
		cs.log.Warn("coupon cache invalidate failed", "code", c.Code, "error", err)
	}
}

func (cs *couponService) ApplyCoupon(ctx context.Context, email, code string) (_ *domain.ActiveContract, err error) {
	defer func() { recordLifecycle(observability.OpCouponApply, err) }()
	if strings.TrimSpace(code) == "" {
		return nil, apierr.NotFound(MsgCouponNotFound)
	}
	var (
		out  *domain.ActiveContract
		fill *domain.Coupon
	)
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		coupon, fromDB, err := cs.resolve(dbc, code)
		if err != nil {
			return fmt.Errorf("resolve coupon: %w", err)
		}
		if fromDB {
			fill = coupon
		}
		if coupon == nil || coupon.DiscountPercent <= 0 {
			return apierr.NotFound(MsgCouponNotFound)
		}

		n, err := cs.contractRepo.ApplyDiscount(dbc, email, coupon.DiscountPercent)
		if err != nil {
			return fmt.Errorf("apply discount: %w", err)
		}
		if n == 0 {
			return apierr.NotFound(MsgContractNotFound)
		}
		out, err = cs.contractRepo.GetByEmail(dbc, email)
		if err != nil {
			return fmt.Errorf("reload contract: %w", err)
		}
		return nil
	})
	cs.fillCache(ctx, fill)
	if err != nil {
		if apierr.KindOf(err) != apierr.KindInternal {
			return nil, err
		}
		return nil, apierr.Internal(err)
	}
	cs.log.Info("coupon applied", "email", email, "code", strings.ToUpper(strings.TrimSpace(code)), "rent", out.Rent)
	return out, nil
}

func (cs *couponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	out, err := cs.couponRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list coupons: %w", err))
	}
	return out, nil
}

func (cs *couponService) Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	if c == nil || strings.TrimSpace(c.Code) == "" {
		return nil, apierr.InvalidArgument("code is required")
	}
	if c.DiscountPercent <= 0 {
		return nil, apierr.InvalidArgument("discount_percent must be positive")
	}
	c.ID = uuid.Nil
	created, err := cs.couponRepo.Create(dbctx.Context{Ctx: ctx}, []*domain.Coupon{c})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("coupon code already exists")
		}
		return nil, apierr.Internal(fmt.Errorf("create coupon: %w", err))
	}
	return created[0], nil
}

func (cs *couponService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if id == uuid.Nil {
		return 0, apierr.InvalidArgument("invalid coupon id")
	}
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := cs.couponRepo.GetByID(dbc, id)
	if err != nil {
		return 0, apierr.Internal(fmt.Errorf("get coupon: %w", err))
	}
	if existing == nil {
		return 0, nil
	}
	n, err := cs.couponRepo.DeleteByID(dbc, id)
	if err != nil {
		return 0, apierr.Internal(fmt.Errorf("delete coupon: %w", err))
	}
	if cs.cache != nil {
		if err := cs.cache.Invalidate(ctx, existing.Code); err != nil {
			cs.log.Warn("coupon cache invalidate failed", "code", existing.Code, "error", err)
		}
	}
	return n, nil
}
