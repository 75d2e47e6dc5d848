package building

import (
	"context"
	"testing"

	"github.com/yungbote/buildcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/buildcare-backend/internal/domain"
	"github.com/yungbote/buildcare-backend/internal/platform/dbctx"
)

func TestApartmentRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewApartmentRepo(gdb, testutil.Logger(t))

	rows := []*domain.Apartment{
		{ApartmentNo: "A-1", FloorNo: 1, BlockName: "A", Rent: 800},
		{ApartmentNo: "A-2", FloorNo: 1, BlockName: "A", Rent: 1200},
		{ApartmentNo: "B-1", FloorNo: 2, BlockName: "B", Rent: 1500},
	}
	if _, err := repo.Upsert(dbc, rows); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	n, err := repo.Upsert(dbc, []*domain.Apartment{{ApartmentNo: "A-1", Rent: 999}})
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if n != 0 {
		t.Fatalf("Upsert again: want=0 inserted got=%d", n)
	}

	total, err := repo.Count(dbc)
	if err != nil || total != 3 {
		t.Fatalf("Count: total=%d err=%v", total, err)
	}
	page, err := repo.List(dbc, 2, 2)
	if err != nil || len(page) != 1 || page[0].ApartmentNo != "B-1" {
		t.Fatalf("List: page=%+v err=%v", page, err)
	}
	cheap, err := repo.ListByMaxRent(dbc, 1200)
	if err != nil || len(cheap) != 2 {
		t.Fatalf("ListByMaxRent: len=%d err=%v", len(cheap), err)
	}
}

func TestAnnouncementRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewAnnouncementRepo(gdb, testutil.Logger(t))

	if _, err := repo.Create(dbc, &domain.Announcement{Title: "Water outage", Description: "Tuesday 9-12"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, err := repo.List(dbc)
	if err != nil || len(list) != 1 || list[0].Title != "Water outage" {
		t.Fatalf("List: %+v err=%v", list, err)
	}
}
