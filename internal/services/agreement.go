package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const MsgOneAgreementPerUser = "One user one agreement"

// AgreementService is agreement intake: at most one outstanding request per
// identity.
type AgreementService interface {
	Submit(ctx context.Context, email string, req *domain.AgreementRequest) (*domain.AgreementRequest, error)
	List(ctx context.Context) ([]*domain.AgreementRequest, error)
	GetByEmail(ctx context.Context, email string) (*domain.AgreementRequest, error)
}

type agreementService struct {
	log           *logger.Logger
	agreementRepo repos.AgreementRepo
}

func NewAgreementService(log *logger.Logger, agreementRepo repos.AgreementRepo) AgreementService {
	return &agreementService{
		log:           log.With("service", "AgreementService"),
		agreementRepo: agreementRepo,
	}
}

// Submit stores req as pending for email. The lookup is the fast path; the
// unique email index decides concurrent submissions.
func (as *agreementService) Submit(ctx context.Context, email string, req *domain.AgreementRequest) (_ *domain.AgreementRequest, err error) {
	defer func() { recordLifecycle(observability.OpAgreementSubmit, err) }()
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apierr.InvalidArgument("email is required")
	}
	if req == nil {
		return nil, apierr.InvalidArgument("agreement body is required")
	}
	if strings.TrimSpace(req.ApartmentNo) == "" {
		return nil, apierr.InvalidArgument("apartment_no is required")
	}
	if req.Rent <= 0 {
		return nil, apierr.InvalidArgument("rent must be positive")
	}

	dbc := dbctx.Context{Ctx: ctx}
	existing, err := as.agreementRepo.GetByEmail(dbc, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("lookup agreement: %w", err))
	}
	if existing != nil {
		return nil, apierr.Conflict(MsgOneAgreementPerUser)
	}

	req.ID = uuid.Nil
	req.Email = email
	req.Status = domain.AgreementStatusPending
	created, err := as.agreementRepo.Create(dbc, req)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict(MsgOneAgreementPerUser)
		}
		return nil, apierr.Internal(fmt.Errorf("create agreement: %w", err))
	}
	as.log.Info("agreement submitted", "email", created.Email, "agreement_id", created.ID)
	return created, nil
}

func (as *agreementService) List(ctx context.Context) ([]*domain.AgreementRequest, error) {
	out, err := as.agreementRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list agreements: %w", err))
	}
	return out, nil
}

func (as *agreementService) GetByEmail(ctx context.Context, email string) (*domain.AgreementRequest, error) {
	out, err := as.agreementRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get agreement: %w", err))
	}
	return out, nil
}
