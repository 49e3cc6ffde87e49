package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ParlaySync/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newSlip(eventIDs ...string) *model.Slip {
	s := &model.Slip{
		SlipUUID:  uuid.NewString(),
		LegsCount: len(eventIDs),
		Stake:     decimal.NewFromInt(10),
		Status:    model.SlipPending,
	}
	for i, id := range eventIDs {
		s.Legs = append(s.Legs, model.Leg{Position: i + 1, EventID: id, PickTeamName: "Team " + id, Result: model.LegPending})
	}
	return s
}

func TestSlipRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewSlipRepository(newTestDB(t))

	s := newSlip("3", "1", "2")
	if err := repo.CreateSlip(ctx, s); err != nil {
		t.Fatalf("CreateSlip: %v", err)
	}
	if s.ID == 0 || s.Legs[0].ID == 0 || s.Legs[0].SlipID != s.ID {
		t.Fatalf("ids not populated: %+v", s)
	}

	got, err := repo.GetSlip(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSlip: %v", err)
	}
	if len(got.Legs) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(got.Legs))
	}
	for i, l := range got.Legs {
		if l.Position != i+1 {
			t.Errorf("legs not ordered by position: %+v", got.Legs)
		}
	}
	if got.Legs[0].EventID != "3" || !got.Stake.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected slip: %+v", got)
	}

	if _, err := repo.GetSlip(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSlipRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewSlipRepository(newTestDB(t))

	a, b := newSlip("1"), newSlip("2")
	for _, s := range []*model.Slip{a, b} {
		if err := repo.CreateSlip(ctx, s); err != nil {
			t.Fatal(err)
		}
	}
	now := time.Now()
	b.Status, b.SettledAt = model.SlipSettled, &now
	b.Legs[0].Result = model.LegWin
	if err := repo.SaveSettlement(ctx, b, nil); err != nil {
		t.Fatalf("SaveSettlement: %v", err)
	}

	pending, err := repo.ListPending(ctx)
	if err != nil || len(pending) != 1 || pending[0].ID != a.ID {
		t.Fatalf("ListPending = %v, %v", pending, err)
	}
	settled, _ := repo.ListByStatus(ctx, model.SlipSettled, 10)
	if len(settled) != 1 || settled[0].ID != b.ID || settled[0].Legs[0].Result != model.LegWin {
		t.Fatalf("ListByStatus(SETTLED) = %v", settled)
	}
	all, _ := repo.ListByStatus(ctx, "", 10)
	if len(all) != 2 || all[0].ID != b.ID {
		t.Errorf("ListByStatus(all) should be newest first: %v", all)
	}
}

func TestSlipRepository_SaveSettlement(t *testing.T) {
	ctx := context.Background()
	repo := NewSlipRepository(newTestDB(t))

	s := newSlip("1", "2", "3")
	if err := repo.CreateSlip(ctx, s); err != nil {
		t.Fatal(err)
	}

	// 部分判定：只写腿，单仍为 PENDING
	s.Legs[0].Result = model.LegWin
	if err := repo.SaveSettlement(ctx, s, nil); err != nil {
		t.Fatalf("partial save: %v", err)
	}
	got, _ := repo.GetSlip(ctx, s.ID)
	if got.Status != model.SlipPending || got.Legs[0].Result != model.LegWin || got.Legs[1].Result != model.LegPending {
		t.Fatalf("unexpected after partial save: %+v", got)
	}

	now := time.Now()
	s.Legs[1].Result, s.Legs[2].Result = model.LegWin, model.LegLoss
	s.Status, s.SettledAt = model.SlipSettled, &now
	rec := &model.SettlementRecord{
		SlipID: s.ID, SlipUUID: s.SlipUUID, Outcome: model.SlipWon,
		Wins: 2, Losses: 1, Required: 2, Stake: s.Stake, Payout: decimal.Zero,
		Legs: datatypes.JSON(`[]`), SettledAt: now,
	}
	if err := repo.SaveSettlement(ctx, s, rec); err != nil {
		t.Fatalf("final save: %v", err)
	}
	got, _ = repo.GetSlip(ctx, s.ID)
	if got.Status != model.SlipSettled || got.SettledAt == nil {
		t.Errorf("slip not settled: %+v", got)
	}
	stored, err := repo.GetSettlementRecord(ctx, s.ID)
	if err != nil || stored.Outcome != model.SlipWon || stored.Wins != 2 {
		t.Errorf("settlement record = %+v, %v", stored, err)
	}

	// 已结算的单不能再次迁移
	rec2 := *rec
	rec2.ID = 0
	if err := repo.SaveSettlement(ctx, s, &rec2); !errors.Is(err, ErrSlipNotPending) {
		t.Errorf("expected ErrSlipNotPending, got %v", err)
	}
}

func TestSlipRepository_DeleteSlip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSlipRepository(db)

	s := newSlip("1", "2", "3")
	if err := repo.CreateSlip(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteSlip(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSlip: %v", err)
	}
	var legs int64
	db.Model(&model.Leg{}).Where("slip_id = ?", s.ID).Count(&legs)
	if legs != 0 {
		t.Errorf("expected legs deleted, %d remain", legs)
	}
	if _, err := repo.GetSlip(ctx, s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("slip still present: %v", err)
	}
	if err := repo.DeleteSlip(ctx, s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}
