package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Agreement    repos.AgreementRepo
	Contract     repos.ContractRepo
	Coupon       repos.CouponRepo
	Payment      repos.PaymentRepo
	Apartment    repos.ApartmentRepo
	Announcement repos.AnnouncementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Agreement:    repos.NewAgreementRepo(db, log),
		Contract:     repos.NewContractRepo(db, log),
		Coupon:       repos.NewCouponRepo(db, log),
		Payment:      repos.NewPaymentRepo(db, log),
		Apartment:    repos.NewApartmentRepo(db, log),
		Announcement: repos.NewAnnouncementRepo(db, log),
	}
}
