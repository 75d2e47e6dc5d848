package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

//go:embed default.yaml
var defaultSeed []byte

type File struct {
	Apartments []ApartmentSeed `yaml:"apartments"`
	Coupons    []CouponSeed    `yaml:"coupons"`
	Admins     []AdminSeed     `yaml:"admins"`
}

type ApartmentSeed struct {
	ApartmentNo string  `yaml:"apartment_no"`
	BlockName   string  `yaml:"block_name"`
	FloorNo     int     `yaml:"floor_no"`
	Rent        float64 `yaml:"rent"`
	Image       string  `yaml:"image"`
}

type CouponSeed struct {
	Code            string  `yaml:"code"`
	DiscountPercent float64 `yaml:"discount_percent"`
	Description     string  `yaml:"description"`
}

type AdminSeed struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// Report counts rows written by one Apply.
type Report struct {
	Apartments int64
	Coupons    int
	Admins     int
}

// Load reads path, or the embedded default set when path is empty.
func Load(path string) (*File, error) {
	data := defaultSeed
	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	for i, a := range f.Apartments {
		if strings.TrimSpace(a.ApartmentNo) == "" {
			return fmt.Errorf("apartments[%d]: apartment_no is required", i)
		}
		if a.Rent <= 0 {
			return fmt.Errorf("apartments[%d]: rent must be positive", i)
		}
	}
	for i, c := range f.Coupons {
		if strings.TrimSpace(c.Code) == "" {
			return fmt.Errorf("coupons[%d]: code is required", i)
		}
		if c.DiscountPercent <= 0 {
			return fmt.Errorf("coupons[%d]: discount_percent must be positive", i)
		}
	}
	for i, a := range f.Admins {
		if strings.TrimSpace(a.Email) == "" {
			return fmt.Errorf("admins[%d]: email is required", i)
		}
	}
	return nil
}

type Seeder struct {
	db            *gorm.DB
	log           *logger.Logger
	apartmentRepo repos.ApartmentRepo
	couponRepo    repos.CouponRepo
	userRepo      repos.UserRepo
}

func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	return &Seeder{
		db:            db,
		log:           log.With("component", "Seeder"),
		apartmentRepo: repos.NewApartmentRepo(db, log),
		couponRepo:    repos.NewCouponRepo(db, log),
		userRepo:      repos.NewUserRepo(db, log),
	}
}

// Apply writes f in one transaction. Rerunning the same file writes nothing:
// apartments upsert on apartment_no, coupons skip existing codes and admins
// are promoted in place.
func (s *Seeder) Apply(ctx context.Context, f *File) (Report, error) {
	var rep Report
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		rows := make([]*domain.Apartment, 0, len(f.Apartments))
		for _, a := range f.Apartments {
			rows = append(rows, &domain.Apartment{
				ApartmentNo: strings.TrimSpace(a.ApartmentNo),
				BlockName:   a.BlockName,
				FloorNo:     a.FloorNo,
				Rent:        a.Rent,
				Image:       a.Image,
			})
		}
		n, err := s.apartmentRepo.Upsert(dbc, rows)
		if err != nil {
			return fmt.Errorf("seed apartments: %w", err)
		}
		rep.Apartments = n

		for _, c := range f.Coupons {
			existing, err := s.couponRepo.GetByCode(dbc, c.Code)
			if err != nil {
				return fmt.Errorf("lookup coupon %s: %w", c.Code, err)
			}
			if existing != nil {
				continue
			}
			if _, err := s.couponRepo.Create(dbc, []*domain.Coupon{{
				Code:            c.Code,
				DiscountPercent: c.DiscountPercent,
				Description:     c.Description,
			}}); err != nil {
				return fmt.Errorf("seed coupon %s: %w", c.Code, err)
			}
			rep.Coupons++
		}

		for _, a := range f.Admins {
			u, err := s.userRepo.GetByEmail(dbc, a.Email)
			if err != nil {
				return fmt.Errorf("lookup admin %s: %w", a.Email, err)
			}
			switch {
			case u == nil:
				name := a.Name
				if name == "" {
					name = a.Email
				}
				if _, err := s.userRepo.Create(dbc, []*domain.User{{Email: a.Email, Name: name, Role: domain.RoleAdmin}}); err != nil {
					return fmt.Errorf("seed admin %s: %w", a.Email, err)
				}
				rep.Admins++
			case u.Role != domain.RoleAdmin:
				if _, err := s.userRepo.UpdateRoleByEmail(dbc, a.Email, domain.RoleAdmin); err != nil {
					return fmt.Errorf("promote admin %s: %w", a.Email, err)
				}
				rep.Admins++
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	s.log.Info("Seed applied", "apartments", rep.Apartments, "coupons", rep.Coupons, "admins", rep.Admins)
	return rep, nil
}
