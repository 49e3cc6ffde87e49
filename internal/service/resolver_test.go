package service

import (
	"context"
	"errors"
	"testing"

	"ParlaySync/internal/model"
)

func TestResolverService(t *testing.T) {
	src := &stubSource{summaries: map[string]*model.SummaryPayload{
		"1": summary("post", "Georgia Bulldogs", "Georgia Bulldogs", "Clemson Tigers"),
		"2": summary("pre", "", "Texas Longhorns", "Rice Owls"),
		"3": {Header: &model.ESPNHeader{}},
	}}
	r := NewResolverService(src, testLogger())
	ctx := context.Background()

	res, err := r.Resolve(ctx, "1")
	if err != nil || !res.Final || !res.HasWinner || res.Winner != "Georgia Bulldogs" {
		t.Errorf("Resolve(1) = %+v, %v", res, err)
	}
	res, err = r.Resolve(ctx, "3")
	if err != nil || res.Final || res.HasWinner {
		t.Errorf("no competition should be unresolved without error: %+v, %v", res, err)
	}
	if _, err := r.Resolve(ctx, "missing"); err == nil {
		t.Error("expected fetch error")
	}

	if state, err := r.GameState(ctx, "2"); err != nil || state != "pre" {
		t.Errorf("GameState(2) = %q, %v", state, err)
	}
	if state, err := r.GameState(ctx, "3"); err != nil || state != "" {
		t.Errorf("GameState(3) = %q, %v", state, err)
	}

	sum, err := r.Summary(ctx, "1")
	if err != nil || sum.Venue != "Unknown" || len(sum.Competitors) != 2 || !sum.Competitors[0].Winner {
		t.Errorf("Summary(1) = %+v, %v", sum, err)
	}
	if _, err := r.Summary(ctx, "3"); !errors.Is(err, ErrNoCompetition) {
		t.Errorf("expected ErrNoCompetition, got %v", err)
	}
}
