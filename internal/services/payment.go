package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/clients/stripe"
	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/observability"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
	"github.com/yungbote/buildcare-backend/internal/platform/ctxutil"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
	"github.com/yungbote/buildcare-backend/internal/platform/logger"
)

const MsgPaymentExists = "Payment Already Exists"

type SettleInput struct {
	Email         string
	ContractID    uuid.UUID
	Amount        float64
	TransactionID string
	Month         string
}

// PaymentService is the payment ledger: one settlement per identity, each
// retiring exactly one active contract.
type PaymentService interface {
	Settle(ctx context.Context, in SettleInput) (*domain.PaymentRecord, error)
	History(ctx context.Context, email string) (*domain.PaymentRecord, error)
	// Authorize opens a payment intent with the settlement provider and
	// returns its client secret.
	Authorize(ctx context.Context, email string, amount float64) (string, error)
}

type paymentService struct {
	db           *gorm.DB
	log          *logger.Logger
	paymentRepo  repos.PaymentRepo
	contractRepo repos.ContractRepo
	gateway      stripe.Gateway
	currency     string
}

func NewPaymentService(
	db *gorm.DB,
	log *logger.Logger,
	paymentRepo repos.PaymentRepo,
	contractRepo repos.ContractRepo,
	gateway stripe.Gateway,
	currency string,
) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentService{
		db:           db,
		log:          log.With("service", "PaymentService"),
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		gateway:      gateway,
		currency:     currency,
	}
}

// Settle records the payment and deletes the contract in one transaction.
// A contract that is missing or belongs to another identity aborts the
// whole settlement.
func (ps *paymentService) Settle(ctx context.Context, in SettleInput) (_ *domain.PaymentRecord, err error) {
	defer func() { recordLifecycle(observability.OpSettle, err) }()
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, apierr.InvalidArgument("email is required")
	}
	if in.ContractID == uuid.Nil {
		return nil, apierr.InvalidArgument("invalid acceptRequestId")
	}
	if in.Amount <= 0 {
		return nil, apierr.InvalidArgument("price must be positive")
	}

	var out *domain.PaymentRecord
	err = ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := ps.paymentRepo.GetByEmail(dbc, email)
		if err != nil {
			return fmt.Errorf("lookup payment: %w", err)
		}
		if existing != nil {
			return apierr.Conflict(MsgPaymentExists)
		}

		contract, err := ps.contractRepo.GetByID(dbc, in.ContractID)
		if err != nil {
			return fmt.Errorf("load contract: %w", err)
		}
		if contract == nil || !strings.EqualFold(contract.Email, email) {
			return apierr.NotFound(MsgContractNotFound)
		}

		month := strings.TrimSpace(in.Month)
		if month == "" {
			month = contract.Month
		}
		rec, err := ps.paymentRepo.Create(dbc, &domain.PaymentRecord{
			Email:         email,
			Amount:        in.Amount,
			ContractID:    contract.ID,
			TransactionID: strings.TrimSpace(in.TransactionID),
			Month:         month,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return apierr.Conflict(MsgPaymentExists)
			}
			return fmt.Errorf("create payment: %w", err)
		}

		n, err := ps.contractRepo.DeleteByID(dbc, contract.ID)
		if err != nil {
			return fmt.Errorf("retire contract: %w", err)
		}
		if n != 1 {
			return apierr.NotFound(MsgContractNotFound)
		}
		out = rec
		return nil
	})
	if err != nil {
		if apierr.KindOf(err) != apierr.KindInternal {
			return nil, err
		}
		ps.log.Error("settlement rolled back", "email", email, "contract_id", in.ContractID, "error", err)
		return nil, apierr.Internal(err)
	}
	ps.log.Info("payment settled", "email", email, "payment_id", out.ID, "amount", out.Amount)
	return out, nil
}

func (ps *paymentService) History(ctx context.Context, email string) (*domain.PaymentRecord, error) {
	out, err := ps.paymentRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("get payment: %w", err))
	}
	return out, nil
}

func (ps *paymentService) Authorize(ctx context.Context, email string, amount float64) (string, error) {
	if ps.gateway == nil {
		return "", apierr.Internal(errors.New("payment gateway not configured"))
	}
	if stripe.AmountCents(amount) <= 0 {
		return "", apierr.InvalidArgument("price must be positive")
	}
	key := ""
	if reqID := ctxutil.CorrelationFrom(ctx).RequestID; reqID != "" {
		key = "checkout:" + reqID
	}
	intent, err := ps.gateway.CreateIntent(ctx, amount, ps.currency, key)
	if err != nil {
		if errors.Is(err, stripe.ErrInvalidAmount) {
			return "", apierr.InvalidArgument(err.Error())
		}
		return "", apierr.Internal(fmt.Errorf("authorize payment: %w", err))
	}
	ps.log.Info("payment authorized", "email", email, "intent_id", intent.ID, "amount_cents", intent.AmountCents)
	return intent.ClientSecret, nil
}
