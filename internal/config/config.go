package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm/logger"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Database   DatabaseConfig   `mapstructure:"database"`   // 数据库配置
	Source     SourceConfig     `mapstructure:"source"`     // 赛程数据源配置
	Wallet     WalletConfig     `mapstructure:"wallet"`     // 游戏币钱包配置
	Settlement SettlementConfig `mapstructure:"settlement"` // 结算配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig 数据库配置（postgres 用于部署，sqlite 用于本地单机）
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // postgres / sqlite
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogLevel        string        `mapstructure:"log_level"`         // GORM日志级别：silent/error/warn/info
}

// SourceConfig 上游体育数据源配置
type SourceConfig struct {
	Provider string `mapstructure:"provider"` // 数据源名称，目前仅 espn
	BaseURL  string `mapstructure:"base_url"` // API基础地址
	Timeout  int    `mapstructure:"timeout"`  // 单次请求超时（秒）
	Proxy    string `mapstructure:"proxy"`    // 代理地址
}

// WalletConfig 钱包配置
type WalletConfig struct {
	Owner           string  `mapstructure:"owner"`            // 单用户钱包所有者
	StartingBalance float64 `mapstructure:"starting_balance"` // 启动时重置到的余额
}

// SettlementConfig 结算配置
type SettlementConfig struct {
	CreditOnWin bool `mapstructure:"credit_on_win"` // 赢单是否按倍率派彩到钱包（默认关闭）
}

// DefaultESPNBaseURL ESPN 大学橄榄球站点 API
const DefaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "storage/storage.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("source.provider", "espn")
	v.SetDefault("source.base_url", DefaultESPNBaseURL)
	v.SetDefault("source.timeout", 20)
	v.SetDefault("wallet.owner", "default")
	v.SetDefault("wallet.starting_balance", 1000.0)
	v.SetDefault("settlement.credit_on_win", false)
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
// 配置文件不存在时使用默认值
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 2. 读取 config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	// 3. 部署相关字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(cfg)
	return cfg, nil
}

// Default 仅使用默认值构建配置（测试与无配置文件场景）
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		panic(fmt.Sprintf("默认配置解析失败: %v", err))
	}
	return cfg
}

func unmarshal(v *viper.Viper) (*Config, error) {
	v.SetTypeByDefaultValue(true)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖部署配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ESPN_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("ESPN_PROXY"); v != "" {
		cfg.Source.Proxy = v
	}
	if v := os.Getenv("CREDIT_ON_WIN"); v != "" {
		cfg.Settlement.CreditOnWin = strings.EqualFold(v, "true") || v == "1"
	}
}

// GormLogLevel 将配置中的日志级别转换为 GORM 日志级别
func (d *DatabaseConfig) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(d.LogLevel) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
