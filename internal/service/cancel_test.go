package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"
)

func newCancelFixture(t *testing.T) (*SlipService, repository.SlipRepository, *stubResolver, *CancellationService) {
	t.Helper()
	repo := repository.NewSlipRepository(newTestDB(t))
	r := newStubResolver()
	return NewSlipService(repo, testLogger()), repo, r, NewCancellationService(repo, r, testLogger())
}

func TestCancel_AllLegsPre(t *testing.T) {
	slips, repo, r, svc := newCancelFixture(t)
	s := mustCreate(t, slips, "10", leg("E1", "A"), leg("E2", "B"), leg("E3", "C"))
	r.states["E1"], r.states["E2"], r.states["E3"] = "pre", "pre", "pre"

	ok, msg := svc.Cancel(context.Background(), s.ID)
	if !ok || msg != fmt.Sprintf("Slip #%d canceled.", s.ID) {
		t.Fatalf("Cancel = %v, %q", ok, msg)
	}
	if _, err := repo.GetSlip(context.Background(), s.ID); !isNotFound(err) {
		t.Errorf("slip should be gone, got %v", err)
	}
}

func TestCancel_Refused(t *testing.T) {
	slips, repo, r, svc := newCancelFixture(t)
	ctx := context.Background()

	started := mustCreate(t, slips, "10", leg("E1", "A"), leg("E2", "B"), leg("E3", "C"))
	r.states["E1"], r.states["E2"], r.states["E3"] = "pre", "in", "pre"
	ok, msg := svc.Cancel(ctx, started.ID)
	if ok || msg != "Cannot cancel: leg 2 (event E2) has already started (state in)." {
		t.Errorf("in-progress leg: %v, %q", ok, msg)
	}

	finished := mustCreate(t, slips, "10", leg("F1", "A"))
	r.states["F1"] = "post"
	if ok, msg := svc.Cancel(ctx, finished.ID); ok || !strings.Contains(msg, "state post") {
		t.Errorf("finished leg: %v, %q", ok, msg)
	}

	unknown := mustCreate(t, slips, "10", leg("U1", "A"))
	if ok, msg := svc.Cancel(ctx, unknown.ID); ok || !strings.Contains(msg, "has already started") {
		t.Errorf("empty state must not count as pre: %v, %q", ok, msg)
	}

	broken := mustCreate(t, slips, "10", leg("B1", "A"))
	r.errs["B1"] = errUpstream
	ok, msg = svc.Cancel(ctx, broken.ID)
	if ok || !strings.HasPrefix(msg, "Cannot cancel: leg 1 (event B1) could not be checked:") {
		t.Errorf("fetch error: %v, %q", ok, msg)
	}

	for _, s := range []*model.Slip{started, finished, unknown, broken} {
		if got, err := repo.GetSlip(ctx, s.ID); err != nil || len(got.Legs) != s.LegsCount {
			t.Errorf("refused cancel must leave slip #%d intact: %v", s.ID, err)
		}
	}
}

func TestCancel_NotFoundAndNotPending(t *testing.T) {
	slips, repo, r, svc := newCancelFixture(t)
	ctx := context.Background()

	if ok, msg := svc.Cancel(ctx, 42); ok || msg != "Slip #42 not found." {
		t.Errorf("missing slip: %v, %q", ok, msg)
	}

	s := mustCreate(t, slips, "10", leg("E1", "A"))
	now := time.Now()
	s.Legs[0].Result = model.LegWin
	s.Status, s.SettledAt = model.SlipSettled, &now
	if err := repo.SaveSettlement(ctx, s, nil); err != nil {
		t.Fatal(err)
	}
	r.states["E1"] = "pre"
	ok, msg := svc.Cancel(ctx, s.ID)
	if ok || msg != fmt.Sprintf("Slip #%d is not pending (status SETTLED).", s.ID) {
		t.Errorf("settled slip: %v, %q", ok, msg)
	}
	if r.calls["E1"] != 0 {
		t.Error("state should not be checked for a non-pending slip")
	}
}
