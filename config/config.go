package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Booking BookingConfig `yaml:"booking"`
	Catalog CatalogConfig `yaml:"catalog"`
}

type HTTPConfig struct {
	Address             string   `yaml:"address"`
	SwaggerDir          string   `yaml:"swagger_dir"`
	CORSOrigins         []string `yaml:"cors_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

type StoreConfig struct {
	Driver      string         `yaml:"driver"`
	FileDir     string         `yaml:"file_dir"`
	SQLitePath  string         `yaml:"sqlite_path"`
	RedisPrefix string         `yaml:"redis_prefix"`
	Postgres    DatabaseConfig `yaml:"postgres"`
	MySQL       MySQLConfig    `yaml:"mysql"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

func (m MySQLConfig) DSN() string {
	c := mysql.NewConfig()
	c.User = m.User
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	c.DBName = m.Name
	c.ParseTime = true
	c.Loc = time.UTC
	return c.FormatDSN()
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	PaymentDelayMs    int    `yaml:"payment_delay_ms"`
	IDStrategy        string `yaml:"id_strategy"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

func (b BookingConfig) PaymentDelay() time.Duration {
	return time.Duration(b.PaymentDelayMs) * time.Millisecond
}

func (b BookingConfig) SessionTTL() time.Duration {
	return time.Duration(b.SessionTTLMinutes) * time.Minute
}

type CatalogConfig struct {
	Seed                    uint64   `yaml:"seed"`
	CalendarCacheTTLSeconds int      `yaml:"calendar_cache_ttl_seconds"`
	BookedDates             []string `yaml:"booked_dates"`
}

func (c CatalogConfig) CalendarCacheTTL() time.Duration {
	return time.Duration(c.CalendarCacheTTLSeconds) * time.Second
}

// Default is the configuration used for anything a config file leaves out.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:             ":8080",
			CORSOrigins:         []string{"*"},
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 20,
		},
		Log: LogConfig{Level: "info"},
		Store: StoreConfig{
			Driver:      StoreFile,
			FileDir:     "data",
			SQLitePath:  "data/wedding.db",
			RedisPrefix: "wedding:",
		},
		Kafka: KafkaConfig{
			BookingTopic:       "wedding.bookings",
			NotificationsTopic: "wedding.notifications",
			GroupID:            "wedding-worker",
		},
		Booking: BookingConfig{
			PaymentDelayMs:    2000,
			IDStrategy:        "monotonic",
			SessionTTLMinutes: 120,
		},
		Catalog: CatalogConfig{
			CalendarCacheTTLSeconds: 86400,
		},
	}
}

// LoadConfig reads a YAML file over the defaults, then applies env overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := splitList(os.Getenv("KAFKA_BROKERS")); len(v) > 0 {
		cfg.Kafka.Brokers = v
	}
	if v := splitList(os.Getenv("CORS_ORIGINS")); len(v) > 0 {
		cfg.HTTP.CORSOrigins = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
