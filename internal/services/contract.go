package services

import (
	"context"
	"fmt"
	"strings"


	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

type ContractService interface {
	Get(ctx context.Context, email string) (*domain.ActiveContract, error)
	SetMonth(ctx context.Context, email, month string) (int64, error)
}

type contractService struct {
	log          *logger.Logger
	contractRepo repos.ContractRepo
}

func NewContractService(log *logger.Logger, contractRepo repos.ContractRepo) ContractService {
	return &contractService{
		log:          log.With("service", "ContractService"),
		contractRepo: contractRepo,
	}
}

func (cs *contractService) Get(ctx context.Context, email string) (*domain.ActiveContract, error) {
	out, err := cs.contractRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get contract: %w", err))
	}
	return out, nil
}

// SetMonth records the paid-through month marker. It reports the number of
// contracts matched, which is zero when the identity holds none.
func (cs *contractService) SetMonth(ctx context.Context, email, month string) (int64, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return 0, apierr.InvalidArgument("month is required")
	}
	n, err := cs.contractRepo.SetMonth(dbctx.Context{Ctx: ctx}, email, month)
	if err != nil {
		return 0, apierr.Internal(fmt.Errorf("set month: %w", err))
	}
	return n, nil
}
