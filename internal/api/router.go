package api

import (
	"ParlaySync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services 路由依赖的全部服务
type Services struct {
	Schedule     *service.ScheduleService
	Resolver     *service.ResolverService
	Slips        *service.SlipService
	Settlement   *service.SettlementService
	Cancellation *service.CancellationService
	Wallet       *service.WalletService
}

// RegisterRoutes 注册全部 API 路由
func RegisterRoutes(r gin.IRouter, svc *Services, logger *logrus.Logger) {
	syncHandler := NewSyncHandler(svc.Schedule, logger)
	r.POST("/sync/games", syncHandler.SyncGames)
	r.POST("/sync/season", syncHandler.SyncSeason)
	r.POST("/sync/rankings", syncHandler.SyncRankings)

	gameHandler := NewGameHandler(svc.Schedule, svc.Resolver, logger)
	r.GET("/api/games", gameHandler.ListGames)
	r.GET("/api/games/upcoming", gameHandler.UpcomingGames)
	r.GET("/api/games/final", gameHandler.FinalGames)
	r.GET("/api/games/:event_id/summary", gameHandler.GameSummary)
	r.GET("/api/rankings", gameHandler.ListRankings)
	r.GET("/api/rankings/top25", gameHandler.Top25)

	slipHandler := NewSlipHandler(svc.Slips, svc.Settlement, svc.Cancellation, logger)
	r.POST("/api/slips", slipHandler.CreateSlip)
	r.GET("/api/slips", slipHandler.ListSlips)
	r.GET("/api/slips/:id", slipHandler.GetSlip)
	r.DELETE("/api/slips/:id", slipHandler.CancelSlip)
	r.POST("/api/settlement/run", slipHandler.RunSettlement)

	walletHandler := NewWalletHandler(svc.Wallet, logger)
	r.GET("/api/wallet", walletHandler.GetWallet)
	r.GET("/api/wallet/history", walletHandler.History)
}
