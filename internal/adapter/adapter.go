package adapter

import (
	"fmt"

	"ParlaySync/internal/config"
	"ParlaySync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// NewSource 按配置中的 provider 从注册表创建数据源实例
func NewSource(cfg *config.SourceConfig, logger *logrus.Logger) (interfaces.SportsDataSource, error) {
	factory, ok := GetFactory(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("未支持的数据源: %s（已注册：%v）", cfg.Provider, ListFactories())
	}
	source := factory(cfg, logger)
	if source == nil {
		return nil, fmt.Errorf("数据源%s的工厂函数返回nil", cfg.Provider)
	}
	logger.WithField("provider", cfg.Provider).Info("数据源初始化成功")
	return source, nil
}
