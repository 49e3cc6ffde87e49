package espn

import (
	"testing"

	"ParlaySync/internal/model"
)

func summaryWith(state string, competitors ...model.ESPNCompetitor) *model.SummaryPayload {
	return &model.SummaryPayload{Header: &model.ESPNHeader{
		Competitions: []model.ESPNCompetition{{
			Date:        "2025-09-13T16:00Z",
			Status:      &model.ESPNStatus{Type: &model.ESPNStatusType{State: state, Description: "Final"}},
			Competitors: competitors,
		}},
	}}
}

func team(name string) *model.ESPNTeam {
	return &model.ESPNTeam{DisplayName: name}
}

func TestResolveSummary(t *testing.T) {
	tests := []struct {
		name       string
		summary    *model.SummaryPayload
		wantFinal  bool
		wantWinner string
		wantHas    bool
	}{
		{
			name: "final with winner",
			summary: summaryWith("post",
				model.ESPNCompetitor{Winner: true, Team: team("Georgia Bulldogs")},
				model.ESPNCompetitor{Team: team("Clemson Tigers")}),
			wantFinal: true, wantWinner: "Georgia Bulldogs", wantHas: true,
		},
		{
			name: "state compared case-insensitively",
			summary: summaryWith("POST",
				model.ESPNCompetitor{Winner: true, Team: team("Georgia Bulldogs")}),
			wantFinal: true, wantWinner: "Georgia Bulldogs", wantHas: true,
		},
		{
			name: "in progress",
			summary: summaryWith("in",
				model.ESPNCompetitor{Team: team("Georgia Bulldogs")},
				model.ESPNCompetitor{Team: team("Clemson Tigers")}),
		},
		{
			name: "final without winner flag",
			summary: summaryWith("post",
				model.ESPNCompetitor{Team: team("Georgia Bulldogs")},
				model.ESPNCompetitor{Team: team("Clemson Tigers")}),
			wantFinal: true,
		},
		{
			name: "two winners is ambiguous",
			summary: summaryWith("post",
				model.ESPNCompetitor{Winner: true, Team: team("Georgia Bulldogs")},
				model.ESPNCompetitor{Winner: true, Team: team("Clemson Tigers")}),
			wantFinal: true,
		},
		{
			name: "winner name falls back to short display name",
			summary: summaryWith("post",
				model.ESPNCompetitor{Winner: true, Team: &model.ESPNTeam{ShortDisplayName: "Georgia"}}),
			wantFinal: true, wantWinner: "Georgia", wantHas: true,
		},
		{
			name:    "no competitions",
			summary: &model.SummaryPayload{Header: &model.ESPNHeader{}},
		},
		{
			name:    "no header",
			summary: &model.SummaryPayload{},
		},
	}
	for _, tt := range tests {
		res := ResolveSummary("401", tt.summary)
		if res.EventID != "401" {
			t.Errorf("%s: event id = %q", tt.name, res.EventID)
		}
		if res.Final != tt.wantFinal || res.Winner != tt.wantWinner || res.HasWinner != tt.wantHas {
			t.Errorf("%s: got final=%v winner=%q has=%v, want final=%v winner=%q has=%v",
				tt.name, res.Final, res.Winner, res.HasWinner, tt.wantFinal, tt.wantWinner, tt.wantHas)
		}
	}
}

func TestGameState(t *testing.T) {
	if got := GameState(summaryWith("pre")); got != "pre" {
		t.Errorf("GameState = %q, want pre", got)
	}
	if got := GameState(&model.SummaryPayload{}); got != "" {
		t.Errorf("GameState without competition = %q, want empty", got)
	}
}

func TestBuildSummary(t *testing.T) {
	s := summaryWith("post",
		model.ESPNCompetitor{HomeAway: "home", Winner: true, Score: model.FlexInt{Value: 28, Valid: true}, Team: team("Georgia Bulldogs")},
		model.ESPNCompetitor{HomeAway: "away", Team: &model.ESPNTeam{Location: "Clemson", Name: "Tigers"}})

	out, ok := BuildSummary("401", s)
	if !ok {
		t.Fatal("expected summary")
	}
	if out.Venue != "Unknown" || out.Status != "Final" || out.State != "post" || out.Date != "2025-09-13T16:00Z" {
		t.Errorf("unexpected header fields: %+v", out)
	}
	if len(out.Competitors) != 2 {
		t.Fatalf("expected 2 competitors, got %d", len(out.Competitors))
	}
	home := out.Competitors[0]
	if home.Team != "Georgia Bulldogs" || !home.Winner || home.Score == nil || *home.Score != 28 {
		t.Errorf("unexpected home: %+v", home)
	}
	if out.Competitors[1].Team != "Clemson Tigers" || out.Competitors[1].Score != nil {
		t.Errorf("unexpected away: %+v", out.Competitors[1])
	}

	s.Header.Competitions[0].Venue = &model.ESPNVenue{FullName: "Mercedes-Benz Stadium"}
	out, _ = BuildSummary("401", s)
	if out.Venue != "Mercedes-Benz Stadium" {
		t.Errorf("venue = %q", out.Venue)
	}

	if _, ok := BuildSummary("401", &model.SummaryPayload{}); ok {
		t.Error("expected no summary without competition data")
	}
}
