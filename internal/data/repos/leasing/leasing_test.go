package leasing

import (
	"context"
	"testing"

	"github.com/yungbote/buildcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/db"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
)

func TestAgreementRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewAgreementRepo(gdb, testutil.Logger(t))

	created, err := repo.Create(dbc, &domain.AgreementRequest{Email: " Resident@Example.com ", ApartmentNo: "A-101", Rent: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != domain.AgreementStatusPending {
		t.Fatalf("status: want=%q got=%q", domain.AgreementStatusPending, created.Status)
	}
	if created.Email != "resident@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}

	_, err = repo.Create(dbc, &domain.AgreementRequest{Email: "resident@example.com", ApartmentNo: "A-102", Rent: 900})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("second Create: expected unique violation, got %v", err)
	}
}

func TestAgreementRepoCheckAndDelete(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewAgreementRepo(gdb, testutil.Logger(t))

	row, err := repo.Create(dbc, &domain.AgreementRequest{Email: "b@example.com", ApartmentNo: "B-1", Rent: 500})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	n, err := repo.MarkChecked(dbc, row.ID)
	if err != nil || n != 1 {
		t.Fatalf("MarkChecked: n=%d err=%v", n, err)
	}
	got, err := repo.GetByID(dbc, row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.AgreementStatusChecked {
		t.Fatalf("status: want=%q got=%q", domain.AgreementStatusChecked, got.Status)
	}
	n, err = repo.DeleteByEmail(dbc, "B@example.com")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByEmail: n=%d err=%v", n, err)
	}
	got, err = repo.GetByEmail(dbc, "b@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByEmail: expected nil after delete, got %+v", got)
	}
}

func TestContractRepoApplyDiscountCompounds(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewContractRepo(gdb, testutil.Logger(t))

	if _, err := repo.Create(dbc, &domain.ActiveContract{Email: "c@example.com", ApartmentNo: "C-3", Rent: 1000}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, want := range []float64{950, 902.5} {
		n, err := repo.ApplyDiscount(dbc, "c@example.com", 20)
		if err != nil || n != 1 {
			t.Fatalf("ApplyDiscount: n=%d err=%v", n, err)
		}
		got, err := repo.GetByEmail(dbc, "c@example.com")
		if err != nil {
			t.Fatalf("GetByEmail: %v", err)
		}
		if got.Rent != want {
			t.Fatalf("rent: want=%v got=%v", want, got.Rent)
		}
	}

	n, err := repo.ApplyDiscount(dbc, "nobody@example.com", 20)
	if err != nil || n != 0 {
		t.Fatalf("ApplyDiscount missing: n=%d err=%v", n, err)
	}
}

func TestContractRepoMonthAndDelete(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewContractRepo(gdb, testutil.Logger(t))

	row, err := repo.Create(dbc, &domain.ActiveContract{Email: "d@example.com", ApartmentNo: "D-4", Rent: 700})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, &domain.ActiveContract{Email: "d@example.com", ApartmentNo: "D-5", Rent: 800}); !db.IsUniqueViolation(err) {
		t.Fatalf("duplicate Create: expected unique violation, got %v", err)
	}
	if n, err := repo.SetMonth(dbc, "d@example.com", "2026-11"); err != nil || n != 1 {
		t.Fatalf("SetMonth: n=%d err=%v", n, err)
	}
	if n, err := repo.SetRent(dbc, "d@example.com", 650); err != nil || n != 1 {
		t.Fatalf("SetRent: n=%d err=%v", n, err)
	}
	got, err := repo.GetByID(dbc, row.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Month != "2026-11" || got.Rent != 650 {
		t.Fatalf("unexpected contract: %+v", got)
	}
	if n, err := repo.DeleteByID(dbc, row.ID); err != nil || n != 1 {
		t.Fatalf("DeleteByID: n=%d err=%v", n, err)
	}
	if n, err := repo.DeleteByEmail(dbc, "d@example.com"); err != nil || n != 0 {
		t.Fatalf("DeleteByEmail after delete: n=%d err=%v", n, err)
	}
}
