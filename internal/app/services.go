package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/platform/logger"
	"github.com/yungbote/buildcare-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Building     services.BuildingService
	Agreement    services.AgreementService
	Adjudication services.AdjudicationService
	Contract     services.ContractService
	Coupon       services.CouponService
	Payment      services.PaymentService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:         services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:         services.NewUserService(log, r.User),
		Building:     services.NewBuildingService(log, r.Apartment, r.Announcement),
		Agreement:    services.NewAgreementService(log, r.Agreement),
		Adjudication: services.NewAdjudicationService(db, log, r.User, r.Agreement, r.Contract),
		Contract:     services.NewContractService(log, r.Contract),
		Coupon:       services.NewCouponService(db, log, r.Coupon, r.Contract, c.CouponCache),
		Payment:      services.NewPaymentService(db, log, r.Payment, r.Contract, c.Payments, cfg.Currency),
	}
}
