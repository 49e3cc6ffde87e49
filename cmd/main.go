package main

import (
	"context"
	"fmt"
	"log"

	"ParlaySync/internal/adapter"
	_ "ParlaySync/internal/adapter/espn"
	"ParlaySync/internal/api"
	"ParlaySync/internal/config"
	"ParlaySync/internal/database"
	"ParlaySync/internal/repository"
	"ParlaySync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	logrusLogger.Info("配置文件加载成功")

	// 3. 连接数据库并建表（幂等）
	db, err := database.Open(&cfg.Database, logrusLogger)
	if err != nil {
		logrusLogger.Fatalf("%v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		logrusLogger.Fatalf("%v", err)
	}
	logrusLogger.Info("数据库表结构检查完成（不存在则已创建）")

	// 4. 数据源
	source, err := adapter.NewSource(&cfg.Source, logrusLogger)
	if err != nil {
		logrusLogger.Fatalf("初始化数据源失败: %v", err)
	}

	// 5. 仓储与服务
	slipRepo := repository.NewSlipRepository(db)
	resolver := service.NewResolverService(source, logrusLogger)
	wallet := service.NewWalletService(repository.NewWalletRepository(db), cfg.Wallet.Owner, logrusLogger)
	svc := &api.Services{
		Schedule:     service.NewScheduleService(source, repository.NewGameRepository(db), repository.NewRankingRepository(db), logrusLogger),
		Resolver:     resolver,
		Slips:        service.NewSlipService(slipRepo, logrusLogger),
		Settlement:   service.NewSettlementService(slipRepo, resolver, wallet, cfg.Settlement.CreditOnWin, logrusLogger),
		Cancellation: service.NewCancellationService(slipRepo, resolver, logrusLogger),
		Wallet:       wallet,
	}

	// 6. 启动时重置钱包并先跑一次结算
	ctx := context.Background()
	if err := wallet.Reset(ctx, decimal.NewFromFloat(cfg.Wallet.StartingBalance)); err != nil {
		logrusLogger.Fatalf("%v", err)
	}
	if checked, settled, err := svc.Settlement.CheckAndSettle(ctx); err != nil {
		logrusLogger.WithError(err).Warn("启动结算失败")
	} else {
		logrusLogger.Infof("启动结算：检查 %d 张，结算 %d 张", checked, settled)
	}

	// 7. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 注册API路由
	api.RegisterRoutes(r, svc, logrusLogger)

	// 9. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logrusLogger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logrusLogger.Fatalf("启动服务失败: %v", err)
	}
}
