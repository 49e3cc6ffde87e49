package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"ParlaySync/internal/config"
	"ParlaySync/internal/database"
	"ParlaySync/internal/interfaces"
	"ParlaySync/internal/model"
	"ParlaySync/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(&config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, testLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

var errUpstream = errors.New("upstream unavailable")

// stubResolver 按赛事 ID 返回预设结果，并记录每个赛事被查询的次数
type stubResolver struct {
	results map[string]model.Resolution
	states  map[string]string
	errs    map[string]error
	calls   map[string]int
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		results: map[string]model.Resolution{},
		states:  map[string]string{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (s *stubResolver) final(eventID, winner string) {
	s.results[eventID] = model.Resolution{EventID: eventID, Winner: winner, HasWinner: winner != "", Final: true, State: "post"}
}

func (s *stubResolver) live(eventID string) {
	s.results[eventID] = model.Resolution{EventID: eventID, State: "in"}
}

func (s *stubResolver) Resolve(_ context.Context, eventID string) (model.Resolution, error) {
	s.calls[eventID]++
	if err := s.errs[eventID]; err != nil {
		return model.Resolution{EventID: eventID}, err
	}
	return s.results[eventID], nil
}

func (s *stubResolver) GameState(_ context.Context, eventID string) (string, error) {
	s.calls[eventID]++
	if err := s.errs[eventID]; err != nil {
		return "", err
	}
	return s.states[eventID], nil
}

var (
	_ interfaces.OutcomeResolver  = (*stubResolver)(nil)
	_ interfaces.GameStateChecker = (*stubResolver)(nil)
)

// stubSource 内存数据源
type stubSource struct {
	scoreboards map[string]*model.ScoreboardPayload // key: seasontype/week
	rankings    *model.RankingsPayload
	summaries   map[string]*model.SummaryPayload
	err         error
	queries     []interfaces.ScoreboardQuery
}

func sbKey(seasonType int, week *int) string {
	if week == nil {
		return fmt.Sprintf("%d/current", seasonType)
	}
	return fmt.Sprintf("%d/%d", seasonType, *week)
}

func (s *stubSource) GetName() string { return "stub" }

func (s *stubSource) FetchScoreboard(_ context.Context, q interfaces.ScoreboardQuery) (*model.ScoreboardPayload, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	sb, ok := s.scoreboards[sbKey(q.SeasonType, q.Week)]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: no scoreboard")
	}
	return sb, nil
}

func (s *stubSource) FetchRankings(context.Context) (*model.RankingsPayload, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rankings, nil
}

func (s *stubSource) FetchSummary(_ context.Context, eventID string) (*model.SummaryPayload, error) {
	if s.err != nil {
		return nil, s.err
	}
	sum, ok := s.summaries[eventID]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: event %s", eventID)
	}
	return sum, nil
}

var _ interfaces.SportsDataSource = (*stubSource)(nil)

func summary(state string, winner string, teams ...string) *model.SummaryPayload {
	comp := model.ESPNCompetition{
		Status: &model.ESPNStatus{Type: &model.ESPNStatusType{State: state, Description: state}},
	}
	for i, name := range teams {
		ha := "away"
		if i == 0 {
			ha = "home"
		}
		comp.Competitors = append(comp.Competitors, model.ESPNCompetitor{
			HomeAway: ha,
			Winner:   name == winner,
			Team:     &model.ESPNTeam{DisplayName: name},
		})
	}
	return &model.SummaryPayload{Header: &model.ESPNHeader{Competitions: []model.ESPNCompetition{comp}}}
}

func mustCreate(t *testing.T, svc *SlipService, stake string, legs ...LegInput) *model.Slip {
	t.Helper()
	s, err := svc.CreateSlip(context.Background(), legs, stake)
	if err != nil {
		t.Fatalf("CreateSlip: %v", err)
	}
	return s
}

func leg(eventID, pick string) LegInput {
	return LegInput{EventID: eventID, Pick: pick}
}

func newWallet(t *testing.T, db *gorm.DB, balance int64) *WalletService {
	t.Helper()
	w := NewWalletService(repository.NewWalletRepository(db), "default", testLogger())
	if err := w.Reset(context.Background(), decimal.NewFromInt(balance)); err != nil {
		t.Fatal(err)
	}
	return w
}
