package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig

	Server ServerConfig
	Logger LoggerConfig

	MySQL MySQLConfig
	Redis RedisConfig

	Mail    MailConfig
	APNs    APNsConfig
	Discord DiscordConfig

	Market     MarketConfig
	Dispatcher DispatcherConfig
	WebSocket  WebSocketConfig

	JWT JWTConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// ServerConfig is the configuration for the HTTP server.
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger.
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// MySQLConfig is the configuration for MySQL.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig is the configuration for Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MailConfig is the configuration for the SMTP transport.
type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	SkipTLSVerify bool
}

// APNsConfig is the configuration for Apple push notifications.
type APNsConfig struct {
	Enabled bool
	AuthKey string
	KeyID   string
	TeamID  string
	Topic   string
	Sandbox bool
}

// DiscordConfig is the configuration for the ops webhook.
type DiscordConfig struct {
	WebhookURL string
}

// MarketConfig is the configuration for the market activity scheduler.
type MarketConfig struct {
	// Timezone is the IANA name of the exchange timezone, e.g. "Asia/Ho_Chi_Minh".
	Timezone string
	// OpenTime/CloseTime bound the active-hours window, "HH:MM" local time.
	OpenTime  string
	CloseTime string
	// TickInterval is the scheduler re-evaluation cadence.
	TickInterval time.Duration
	// OverrideSticky keeps a manual override in force past the next scheduled
	// boundary. Default false: scheduled state reasserts at the boundary.
	OverrideSticky bool
	// RearmOnOpen re-arms triggered alerts when a new session opens.
	RearmOnOpen bool
}

// DispatcherConfig is the configuration for the notification dispatcher.
type DispatcherConfig struct {
	Workers       int
	QueueSize     int
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	IdempotencyTTL time.Duration
}

// WebSocketConfig is the configuration for the realtime push hub.
type WebSocketConfig struct {
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	MaxConnections int
}

// JWTConfig is the configuration for verifying client tokens.
type JWTConfig struct {
	SecretKey string
}

// Load loads configuration using Viper.
func Load() (*Config, error) {
	viper.SetConfigName("stockwatch-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/stockwatch/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional - env vars can carry everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")

	cfg.Server.Host = viper.GetString("server.host")
	cfg.Server.Port = viper.GetInt("server.port")
	cfg.Server.Mode = viper.GetString("server.mode")

	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.MySQL.Host = viper.GetString("mysql.host")
	cfg.MySQL.Port = viper.GetInt("mysql.port")
	cfg.MySQL.User = viper.GetString("mysql.user")
	cfg.MySQL.Password = viper.GetString("mysql.password")
	cfg.MySQL.DBName = viper.GetString("mysql.dbname")

	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	cfg.Mail.Host = viper.GetString("mail.host")
	cfg.Mail.Port = viper.GetInt("mail.port")
	cfg.Mail.Username = viper.GetString("mail.username")
	cfg.Mail.Password = viper.GetString("mail.password")
	cfg.Mail.From = viper.GetString("mail.from")
	cfg.Mail.SkipTLSVerify = viper.GetBool("mail.skip_tls_verify")

	cfg.APNs.Enabled = viper.GetBool("apns.enabled")
	cfg.APNs.AuthKey = viper.GetString("apns.auth_key")
	cfg.APNs.KeyID = viper.GetString("apns.key_id")
	cfg.APNs.TeamID = viper.GetString("apns.team_id")
	cfg.APNs.Topic = viper.GetString("apns.topic")
	cfg.APNs.Sandbox = viper.GetBool("apns.sandbox")

	cfg.Discord.WebhookURL = viper.GetString("discord.webhook_url")

	cfg.Market.Timezone = viper.GetString("market.timezone")
	cfg.Market.OpenTime = viper.GetString("market.open_time")
	cfg.Market.CloseTime = viper.GetString("market.close_time")
	cfg.Market.TickInterval = viper.GetDuration("market.tick_interval")
	cfg.Market.OverrideSticky = viper.GetBool("market.override_sticky")
	cfg.Market.RearmOnOpen = viper.GetBool("market.rearm_on_open")

	cfg.Dispatcher.Workers = viper.GetInt("dispatcher.workers")
	cfg.Dispatcher.QueueSize = viper.GetInt("dispatcher.queue_size")
	cfg.Dispatcher.MaxAttempts = viper.GetInt("dispatcher.max_attempts")
	cfg.Dispatcher.InitialDelay = viper.GetDuration("dispatcher.initial_delay")
	cfg.Dispatcher.MaxDelay = viper.GetDuration("dispatcher.max_delay")
	cfg.Dispatcher.IdempotencyTTL = viper.GetDuration("dispatcher.idempotency_ttl")

	cfg.WebSocket.PongWait = viper.GetDuration("websocket.pong_wait")
	cfg.WebSocket.PingPeriod = viper.GetDuration("websocket.ping_period")
	cfg.WebSocket.WriteWait = viper.GetDuration("websocket.write_wait")
	cfg.WebSocket.MaxMessageSize = viper.GetInt64("websocket.max_message_size")
	cfg.WebSocket.MaxConnections = viper.GetInt("websocket.max_connections")

	cfg.JWT.SecretKey = viper.GetString("jwt.secret_key")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("mysql.host", "localhost")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.user", "stockwatch")
	viper.SetDefault("mysql.dbname", "stockwatch")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("mail.port", 587)

	// VN exchanges trade 09:00-15:00 local time.
	viper.SetDefault("market.timezone", "Asia/Ho_Chi_Minh")
	viper.SetDefault("market.open_time", "09:00")
	viper.SetDefault("market.close_time", "15:00")
	viper.SetDefault("market.tick_interval", time.Minute)
	viper.SetDefault("market.override_sticky", false)
	viper.SetDefault("market.rearm_on_open", false)

	viper.SetDefault("dispatcher.workers", 4)
	viper.SetDefault("dispatcher.queue_size", 1024)
	viper.SetDefault("dispatcher.max_attempts", 3)
	viper.SetDefault("dispatcher.initial_delay", 500*time.Millisecond)
	viper.SetDefault("dispatcher.max_delay", 30*time.Second)
	viper.SetDefault("dispatcher.idempotency_ttl", 24*time.Hour)

	viper.SetDefault("websocket.pong_wait", 60*time.Second)
	viper.SetDefault("websocket.ping_period", 54*time.Second)
	viper.SetDefault("websocket.write_wait", 10*time.Second)
	viper.SetDefault("websocket.max_message_size", 1024)
	viper.SetDefault("websocket.max_connections", 10000)
}
