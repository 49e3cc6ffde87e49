package service

import (
	"context"
	"testing"

	"ParlaySync/internal/repository"

	"github.com/shopspring/decimal"
)

func TestWalletService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := NewWalletService(repository.NewWalletRepository(db), "", testLogger())

	if w.Owner() != "default" {
		t.Errorf("owner = %q", w.Owner())
	}
	if b, err := w.Balance(ctx); err != nil || !b.IsZero() {
		t.Errorf("missing wallet balance = %s, %v", b, err)
	}

	if err := w.Reset(ctx, decimal.NewFromInt(1000)); err != nil {
		t.Fatal(err)
	}
	if err := w.Reset(ctx, decimal.NewFromInt(1000)); err != nil {
		t.Fatal(err)
	}
	txs, _ := w.History(ctx, 10)
	if len(txs) != 1 || txs[0].Reason != "Wallet reset to 1000.00" {
		t.Fatalf("reset should be idempotent with one audit tx, got %+v", txs)
	}

	if w.Credit(ctx, decimal.Zero, "") || w.Credit(ctx, decimal.NewFromInt(-1), "") {
		t.Error("non-positive credit must be refused")
	}
	if !w.Credit(ctx, decimal.RequireFromString("19.00"), "") {
		t.Error("credit failed")
	}
	if w.Debit(ctx, decimal.NewFromInt(5000), "") {
		t.Error("overdraft debit must be refused")
	}
	if !w.Debit(ctx, decimal.NewFromInt(19), "") {
		t.Error("debit failed")
	}

	b, _ := w.Balance(ctx)
	if !b.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("balance = %s", b)
	}
	txs, _ = w.History(ctx, 10)
	if len(txs) != 3 || txs[0].Reason != "debit" || !txs[0].Amount.Equal(decimal.NewFromInt(-19)) || txs[1].Reason != "credit" {
		t.Errorf("unexpected history: %+v", txs)
	}
}
