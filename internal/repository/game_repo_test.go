package repository

import (
	"context"
	"testing"

	"ParlaySync/internal/model"
)

func TestGameRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGameRepository(newTestDB(t))

	games := []*model.Game{
		{EventID: "2", Start: "2025-09-13T19:30Z", HomeTeam: "B", AwayTeam: "b"},
		{EventID: "1", Start: "2025-09-13T16:00Z", HomeTeam: "A", AwayTeam: "a"},
	}
	for _, g := range games {
		if err := repo.CreateGame(ctx, g); err != nil {
			t.Fatalf("CreateGame: %v", err)
		}
	}
	if err := repo.CreateGame(ctx, &model.Game{EventID: "1", HomeTeam: "X", AwayTeam: "Y"}); err == nil {
		t.Error("duplicate event id should be rejected")
	}

	list, err := repo.ListGames(ctx, 0)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListGames = %v, %v", list, err)
	}
	if list[0].EventID != "1" {
		t.Errorf("expected start ascending, got %s first", list[0].EventID)
	}
	if list[1].HomeTeam != "B" {
		t.Errorf("second game = %+v", list[1])
	}
}
