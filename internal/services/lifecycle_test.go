package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/buildcare-backend/internal/clients/stripe"
	"github.com/yungbote/buildcare-backend/internal/data/repos"
	"github.com/yungbote/buildcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/apierr"
)

type harness struct {
	db           *gorm.DB
	users        repos.UserRepo
	agreementsR  repos.AgreementRepo
	contractsR   repos.ContractRepo
	couponsR     repos.CouponRepo
	paymentsR    repos.PaymentRepo
	agreements   AgreementService
	adjudication AdjudicationService
	coupons      CouponService
	payments     PaymentService
	contracts    ContractService
	gateway      *stripe.FakeGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		db:          gdb,
		users:       repos.NewUserRepo(gdb, log),
		agreementsR: repos.NewAgreementRepo(gdb, log),
		contractsR:  repos.NewContractRepo(gdb, log),
		couponsR:    repos.NewCouponRepo(gdb, log),
		paymentsR:   repos.NewPaymentRepo(gdb, log),
		gateway:     stripe.NewFakeGateway(),
	}
	h.agreements = NewAgreementService(log, h.agreementsR)
	h.adjudication = NewAdjudicationService(gdb, log, h.users, h.agreementsR, h.contractsR)
	h.coupons = NewCouponService(gdb, log, h.couponsR, h.contractsR, nil)
	h.payments = NewPaymentService(gdb, log, h.paymentsR, h.contractsR, h.gateway, "usd")
	h.contracts = NewContractService(log, h.contractsR)
	return h
}

func (h *harness) submit(t *testing.T, email string, rent float64) *domain.AgreementRequest {
	t.Helper()
	req, err := h.agreements.Submit(context.Background(), email, &domain.AgreementRequest{
		UserName:    "Resident",
		FloorNo:     3,
		BlockName:   "U",
		ApartmentNo: "U-301",
		Rent:        rent,
	})
	require.NoError(t, err)
	return req
}

func TestAgreementSubmitOnePerIdentity(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first := h.submit(t, "a@example.com", 1200)
	require.Equal(t, domain.AgreementStatusPending, first.Status)

	_, err := h.agreements.Submit(ctx, "a@example.com", &domain.AgreementRequest{ApartmentNo: "U-302", Rent: 900})
	require.True(t, apierr.Is(err, apierr.KindConflict), "got %v", err)
	require.Equal(t, MsgOneAgreementPerUser, err.Error())

	list, err := h.agreements.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1200.0, list[0].Rent)
}

func TestAgreementSubmitConcurrent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
		other     []error
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.agreements.Submit(ctx, "race@example.com", &domain.AgreementRequest{ApartmentNo: "R-1", Rent: 1000})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case apierr.Is(err, apierr.KindConflict):
				conflicts++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, other)
	require.Equal(t, 1, ok)
	require.Equal(t, callers-1, conflicts)

	list, err := h.agreements.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAgreementSubmitValidation(t *testing.T) {
	h := newHarness(t)
	_, err := h.agreements.Submit(context.Background(), "v@example.com", &domain.AgreementRequest{ApartmentNo: "V-1"})
	require.True(t, apierr.Is(err, apierr.KindInvalidArgument), "got %v", err)
}

func TestAdjudicateAccept(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	testutil.SeedUser(t, h.db, "a@example.com", domain.RoleGuest)
	req := h.submit(t, "a@example.com", 1200)

	res, err := h.adjudication.Adjudicate(ctx, req.ID, "a@example.com", DecisionAccept)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.RolesUpdated)
	require.EqualValues(t, 1, res.AgreementsDeleted)
	require.NotNil(t, res.Contract)

	u, err := h.users.GetByEmail(dbcOf(ctx), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, u.Role)

	c, err := h.contracts.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, 1200.0, c.Rent)
	require.Equal(t, "U-301", c.ApartmentNo)
	require.Equal(t, req.ID, c.AgreementID)

	left, err := h.agreements.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Nil(t, left)
}

func TestAdjudicateReject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	testutil.SeedUser(t, h.db, "r@example.com", domain.RoleGuest)
	req := h.submit(t, "r@example.com", 800)

	res, err := h.adjudication.Adjudicate(ctx, req.ID, "r@example.com", DecisionReject)
	require.NoError(t, err)
	require.Zero(t, res.RolesUpdated)
	require.Nil(t, res.Contract)

	u, err := h.users.GetByEmail(dbcOf(ctx), "r@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleGuest, u.Role)

	c, err := h.contracts.Get(ctx, "r@example.com")
	require.NoError(t, err)
	require.Nil(t, c)

	left, err := h.agreements.GetByEmail(ctx, "r@example.com")
	require.NoError(t, err)
	require.Nil(t, left)
}

func TestAdjudicateDuplicateContractKeepsCheckedMarker(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	testutil.SeedUser(t, h.db, "d@example.com", domain.RoleMember)
	_, err := h.contractsR.Create(dbcOf(ctx), &domain.ActiveContract{Email: "d@example.com", ApartmentNo: "D-1", Rent: 500})
	require.NoError(t, err)
	req := h.submit(t, "d@example.com", 700)

	_, err = h.adjudication.Adjudicate(ctx, req.ID, "d@example.com", DecisionAccept)
	require.True(t, apierr.Is(err, apierr.KindConflict), "got %v", err)
	require.Equal(t, MsgOneContractPerUser, err.Error())

	got, err := h.agreementsR.GetByID(dbcOf(ctx), req.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.AgreementStatusChecked, got.Status)

	c, err := h.contracts.Get(ctx, "d@example.com")
	require.NoError(t, err)
	require.Equal(t, 500.0, c.Rent)
}

func TestAdjudicateUnknownIdentityRollsBack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	req := h.submit(t, "ghost@example.com", 1000)

	_, err := h.adjudication.Adjudicate(ctx, req.ID, "ghost@example.com", DecisionAccept)
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)

	got, err := h.agreementsR.GetByID(dbcOf(ctx), req.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, domain.AgreementStatusPending, got.Status)

	c, err := h.contracts.Get(ctx, "ghost@example.com")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestAdjudicateMismatchedEmail(t *testing.T) {
	h := newHarness(t)
	req := h.submit(t, "m@example.com", 1000)
	_, err := h.adjudication.Adjudicate(context.Background(), req.ID, "other@example.com", DecisionReject)
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)
}

func TestApplyCouponCompounds(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.contractsR.Create(dbcOf(ctx), &domain.ActiveContract{Email: "c@example.com", ApartmentNo: "C-1", Rent: 1000})
	require.NoError(t, err)
	_, err = h.coupons.Create(ctx, &domain.Coupon{Code: "SAVE20", DiscountPercent: 20})
	require.NoError(t, err)

	c, err := h.coupons.ApplyCoupon(ctx, "c@example.com", "save20")
	require.NoError(t, err)
	require.Equal(t, 950.0, c.Rent)

	c, err = h.coupons.ApplyCoupon(ctx, "c@example.com", "SAVE20")
	require.NoError(t, err)
	require.Equal(t, 902.5, c.Rent)
}

func TestApplyCouponNotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.contractsR.Create(dbcOf(ctx), &domain.ActiveContract{Email: "n@example.com", ApartmentNo: "N-1", Rent: 1000})
	require.NoError(t, err)

	_, err = h.coupons.ApplyCoupon(ctx, "n@example.com", "NOPE")
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)
	require.Equal(t, MsgCouponNotFound, err.Error())

	_, err = h.coupons.Create(ctx, &domain.Coupon{Code: "TEN", DiscountPercent: 10})
	require.NoError(t, err)
	_, err = h.coupons.ApplyCoupon(ctx, "nobody@example.com", "TEN")
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)
	require.Equal(t, MsgContractNotFound, err.Error())

	c, err := h.contracts.Get(ctx, "n@example.com")
	require.NoError(t, err)
	require.Equal(t, 1000.0, c.Rent)
}

func TestCouponCreateRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.coupons.Create(ctx, &domain.Coupon{Code: "ZERO", DiscountPercent: 0})
	require.True(t, apierr.Is(err, apierr.KindInvalidArgument), "got %v", err)

	created, err := h.coupons.Create(ctx, &domain.Coupon{Code: "dup", DiscountPercent: 5})
	require.NoError(t, err)
	_, err = h.coupons.Create(ctx, &domain.Coupon{Code: "DUP", DiscountPercent: 7})
	require.True(t, apierr.Is(err, apierr.KindConflict), "got %v", err)

	n, err := h.coupons.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	n, err = h.coupons.Delete(ctx, uuid.New())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSettleExactlyOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	contract, err := h.contractsR.Create(dbcOf(ctx), &domain.ActiveContract{Email: "p@example.com", ApartmentNo: "P-1", Rent: 1200})
	require.NoError(t, err)

	rec, err := h.payments.Settle(ctx, SettleInput{Email: "p@example.com", ContractID: contract.ID, Amount: 1200, Month: "October"})
	require.NoError(t, err)
	require.Equal(t, contract.ID, rec.ContractID)
	require.Equal(t, "October", rec.Month)

	_, err = h.payments.Settle(ctx, SettleInput{Email: "p@example.com", ContractID: contract.ID, Amount: 1200})
	require.True(t, apierr.Is(err, apierr.KindConflict), "got %v", err)
	require.Equal(t, MsgPaymentExists, err.Error())

	n, err := h.paymentsR.CountByEmail(dbcOf(ctx), "p@example.com")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	c, err := h.contracts.Get(ctx, "p@example.com")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestSettleUnknownContractLeavesNoRecord(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	other, err := h.contractsR.Create(dbcOf(ctx), &domain.ActiveContract{Email: "owner@example.com", ApartmentNo: "O-1", Rent: 900})
	require.NoError(t, err)

	_, err = h.payments.Settle(ctx, SettleInput{Email: "x@example.com", ContractID: uuid.New(), Amount: 900})
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)

	_, err = h.payments.Settle(ctx, SettleInput{Email: "x@example.com", ContractID: other.ID, Amount: 900})
	require.True(t, apierr.Is(err, apierr.KindNotFound), "got %v", err)

	rec, err := h.payments.History(ctx, "x@example.com")
	require.NoError(t, err)
	require.Nil(t, rec)

	still, err := h.contracts.Get(ctx, "owner@example.com")
	require.NoError(t, err)
	require.NotNil(t, still)
}

// Walks one identity from intake through settlement.
func TestLifecycleScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	testutil.SeedUser(t, h.db, "a@example.com", domain.RoleGuest)

	req := h.submit(t, "a@example.com", 1200)
	res, err := h.adjudication.Adjudicate(ctx, req.ID, "a@example.com", DecisionAccept)
	require.NoError(t, err)

	u, err := h.users.GetByEmail(dbcOf(ctx), "a@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, u.Role)
	left, err := h.agreements.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Nil(t, left)

	rec, err := h.payments.Settle(ctx, SettleInput{Email: "a@example.com", ContractID: res.Contract.ID, Amount: 1200})
	require.NoError(t, err)
	require.Equal(t, 1200.0, rec.Amount)

	c, err := h.contracts.Get(ctx, "a@example.com")
	require.NoError(t, err)
	require.Nil(t, c)

	_, err = h.payments.Settle(ctx, SettleInput{Email: "a@example.com", ContractID: res.Contract.ID, Amount: 1200})
	require.True(t, apierr.Is(err, apierr.KindConflict), "got %v", err)

	again, err := h.payments.History(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, rec.ID, again.ID)
	require.Equal(t, 1200.0, again.Amount)
}

func TestAuthorizeUsesGateway(t *testing.T) {
	h := newHarness(t)
	secret, err := h.payments.Authorize(context.Background(), "a@example.com", 902.5)
	require.NoError(t, err)
	require.Len(t, h.gateway.Intents, 1)
	require.Equal(t, h.gateway.Intents[0].ClientSecret, secret)
	require.EqualValues(t, 90250, h.gateway.Intents[0].AmountCents)

	_, err = h.payments.Authorize(context.Background(), "a@example.com", 0)
	require.True(t, apierr.Is(err, apierr.KindInvalidArgument), "got %v", err)
}
