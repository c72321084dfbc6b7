package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log      Logger         `mapstructure:"logger"`
	DB       Database       `mapstructure:"database"`
	API      API            `mapstructure:"api"`
	Polygon  Polygon        `mapstructure:"polygon"`
	Cache    Cache          `mapstructure:"cache"`
	Screener Screener       `mapstructure:"screener"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Polygon holds the market data source settings. TTLs are configured per
// query kind instead of being buried in the client as magic constants.
type Polygon struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	BarsCacheTTL        time.Duration `mapstructure:"bars_cache_ttl"`
	PriceCacheTTL       time.Duration `mapstructure:"price_cache_ttl"`
	EarningsCacheTTL    time.Duration `mapstructure:"earnings_cache_ttl"`
	DailyLookbackDays   int           `mapstructure:"daily_lookback_days"`
	WeeklyLookbackDays  int           `mapstructure:"weekly_lookback_days"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Screener struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ScanCron       string        `mapstructure:"scan_cron"`
	ScanEnabled    bool          `mapstructure:"scan_enabled"`
}

type TelegramConfig struct {
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              string        `mapstructure:"chat_id"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerSecond int           `mapstructure:"max_request_per_second"`
	Enabled             bool          `mapstructure:"enabled"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("polygon.base_url", "https://api.polygon.io")
	viper.SetDefault("polygon.timeout", 10*time.Second)
	viper.SetDefault("polygon.max_request_per_minute", 5)
	viper.SetDefault("polygon.bars_cache_ttl", time.Hour)
	viper.SetDefault("polygon.price_cache_ttl", 10*time.Minute)
	viper.SetDefault("polygon.earnings_cache_ttl", 24*time.Hour)
	viper.SetDefault("polygon.daily_lookback_days", 90)
	viper.SetDefault("polygon.weekly_lookback_days", 365)

	viper.SetDefault("cache.default_expiration", time.Hour)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)

	viper.SetDefault("screener.max_concurrency", 4)
	viper.SetDefault("screener.timeout", 2*time.Minute)
	viper.SetDefault("screener.scan_enabled", false)
	viper.SetDefault("screener.scan_cron", "0 13 * * 1-5")

	viper.SetDefault("telegram.enabled", false)
	viper.SetDefault("telegram.timeout", 10*time.Second)
	viper.SetDefault("telegram.max_request_per_second", 1)
}
