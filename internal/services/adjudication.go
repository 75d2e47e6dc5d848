package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const MsgOneContractPerUser = "One agreement per user"

type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(raw string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(raw))) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	}
	return "", apierr.InvalidArgument("button must be accept or reject")
}

type AdjudicationResult struct {
	Decision    Decision
	AgreementID uuid.UUID
	// Number of identity rows promoted; zero on reject.
	RolesUpdated int64
	// Number of agreement requests retired.
	AgreementsDeleted int64
	Contract          *domain.ActiveContract
}

// AdjudicationService resolves a pending agreement. Each decision commits as
// one transaction: promotion, contract and retirement land together or not
// at all.
type AdjudicationService interface {
	Adjudicate(ctx context.Context, requestID uuid.UUID, email string, decision Decision) (*AdjudicationResult, error)
}

type adjudicationService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	agreementRepo repos.AgreementRepo
	contractRepo  repos.ContractRepo
}

func NewAdjudicationService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	agreementRepo repos.AgreementRepo,
	contractRepo repos.ContractRepo,
) AdjudicationService {
	return &adjudicationService{
		db:            db,
		log:           log.With("service", "AdjudicationService"),
		userRepo:      userRepo,
		agreementRepo: agreementRepo,
		contractRepo:  contractRepo,
	}
}

func (as *adjudicationService) Adjudicate(ctx context.Context, requestID uuid.UUID, email string, decision Decision) (_ *AdjudicationResult, err error) {
	defer func() { recordLifecycle(observability.OpAdjudicate, err) }()
	if requestID == uuid.Nil {
		return nil, apierr.InvalidArgument("invalid agreement id")
	}
	if decision != DecisionAccept && decision != DecisionReject {
		return nil, apierr.InvalidArgument("button must be accept or reject")
	}

	var (
		result    = &AdjudicationResult{Decision: decision, AgreementID: requestID}
		duplicate bool
	)
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		req, err := as.agreementRepo.GetByID(dbc, requestID)
		if err != nil {
			return fmt.Errorf("load agreement: %w", err)
		}
		if req == nil || !strings.EqualFold(req.Email, strings.TrimSpace(email)) {
			return apierr.NotFound("agreement request not found")
		}

		if _, err := as.agreementRepo.MarkChecked(dbc, req.ID); err != nil {
			return fmt.Errorf("mark checked: %w", err)
		}

		existing, err := as.contractRepo.GetByEmail(dbc, req.Email)
		if err != nil {
			return fmt.Errorf("lookup contract: %w", err)
		}
		if existing != nil {
			// Keep the checked marker, change nothing else.
			duplicate = true
			return nil
		}

		if decision == DecisionAccept {
			n, err := as.userRepo.UpdateRoleByEmail(dbc, req.Email, domain.RoleMember)
			if err != nil {
				return fmt.Errorf("promote member: %w", err)
			}
			if n == 0 {
				return apierr.NotFound("identity not found")
			}
			result.RolesUpdated = n

			contract, err := as.contractRepo.Create(dbc, domain.ContractFromAgreement(req))
			if err != nil {
				if db.IsUniqueViolation(err) {
					return apierr.Conflict(MsgOneContractPerUser)
				}
				return fmt.Errorf("create contract: %w", err)
			}
			result.Contract = contract
		}

		n, err := as.agreementRepo.DeleteByEmail(dbc, req.Email)
		if err != nil {
			return fmt.Errorf("retire agreement: %w", err)
		}
		result.AgreementsDeleted = n
		return nil
	})
	if err != nil {
		if apierr.KindOf(err) != apierr.KindInternal {
			return nil, err
		}
		as.log.Error("adjudication rolled back", "agreement_id", requestID, "error", err)
		return nil, apierr.Internal(err)
	}
	if duplicate {
		return nil, apierr.Conflict(MsgOneContractPerUser)
	}

	as.log.Info("agreement adjudicated",
		"agreement_id", requestID,
		"decision", string(decision),
		"email", email,
	)
	return result, nil
}
