package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos/billing"
	"github.com/yungbote/buildcare-backend/internal/data/repos/building"
	"github.com/yungbote/buildcare-backend/internal/data/repos/identity"
	"github.com/yungbote/buildcare-backend/internal/data/repos/leasing"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type UserRepo = identity.UserRepo

type AgreementRepo = leasing.AgreementRepo
type ContractRepo = leasing.ContractRepo

type CouponRepo = billing.CouponRepo
type PaymentRepo = billing.PaymentRepo

type ApartmentRepo = building.ApartmentRepo
type AnnouncementRepo = building.AnnouncementRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return identity.NewUserRepo(db, baseLog)
}
func NewAgreementRepo(db *gorm.DB, baseLog *logger.Logger) AgreementRepo {
	return leasing.NewAgreementRepo(db, baseLog)
}
func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return leasing.NewContractRepo(db, baseLog)
}
func NewCouponRepo(db *gorm.DB, baseLog *logger.Logger) CouponRepo {
	return billing.NewCouponRepo(db, baseLog)
}
func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	return billing.NewPaymentRepo(db, baseLog)
}
func NewApartmentRepo(db *gorm.DB, baseLog *logger.Logger) ApartmentRepo {
	return building.NewApartmentRepo(db, baseLog)
}
func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	return building.NewAnnouncementRepo(db, baseLog)
}
