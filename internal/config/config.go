package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Database  DatabaseConfig            `mapstructure:"database"`  // PostgreSQL配置
	Sync      SyncConfig                `mapstructure:"sync"`      // 同步调度配置
	Dispatch  DispatchConfig            `mapstructure:"dispatch"`  // 提醒投递调度配置
	Notify    NotifyConfig              `mapstructure:"notify"`    // 出站通知配置
	Platforms map[string]PlatformConfig `mapstructure:"platforms"` // 多平台独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// SyncConfig 同步调度配置
type SyncConfig struct {
	Interval         time.Duration `mapstructure:"interval"`          // 进程内定时同步间隔，0=只靠外部触发
	EnabledPlatforms []string      `mapstructure:"enabled_platforms"` // 启用的平台列表，顺序即去重优先级
	RetryCount       int           `mapstructure:"retry_count"`       // 单平台抓取重试次数
	RetryBaseDelay   time.Duration `mapstructure:"retry_base_delay"`  // 线性退避基础间隔
}

// DispatchConfig 提醒投递调度配置
type DispatchConfig struct {
	Interval time.Duration `mapstructure:"interval"` // 进程内定时投递间隔，0=只靠外部触发
}

// NotifyConfig 出站通知（Twilio WhatsApp）配置，凭证从 .env 覆盖
type NotifyConfig struct {
	TwilioAccountSID     string `mapstructure:"twilio_account_sid"`
	TwilioAuthToken      string `mapstructure:"twilio_auth_token"`
	TwilioWhatsAppNumber string `mapstructure:"twilio_whatsapp_number"`
	Timeout              int    `mapstructure:"timeout"` // 请求超时（秒）
}

// PlatformConfig 单个平台的独立配置
type PlatformConfig struct {
	BaseURL string `mapstructure:"base_url"` // API基础地址
	Timeout int    `mapstructure:"timeout"`  // 请求超时（秒）
	Limit   int    `mapstructure:"limit"`    // 单次同步最多取多少场
	Proxy   string `mapstructure:"proxy"`    // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		cfg.Notify.TwilioAccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Notify.TwilioAuthToken = v
	}
	if v := os.Getenv("TWILIO_WHATSAPP_NUMBER"); v != "" {
		cfg.Notify.TwilioWhatsAppNumber = v
	}
	if v := os.Getenv("HTTP_PROXY_OVERRIDE"); v != "" {
		for name, p := range cfg.Platforms {
			p.Proxy = v
			cfg.Platforms[name] = p
		}
	}
}

// applyDefaults 关键参数兜底，避免yaml漏配时同步直接废掉
func applyDefaults(cfg *Config) {
	if cfg.Sync.RetryCount <= 0 {
		cfg.Sync.RetryCount = 3
	}
	if cfg.Sync.RetryBaseDelay <= 0 {
		cfg.Sync.RetryBaseDelay = time.Second
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 10
	}
	for name, p := range cfg.Platforms {
		if p.Timeout <= 0 {
			p.Timeout = 10
		}
		cfg.Platforms[name] = p
	}
}
