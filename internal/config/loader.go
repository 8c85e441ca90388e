package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Enumeration EnumerationConfig `mapstructure:"enumeration"`
	Features    FeaturesConfig    `mapstructure:"features"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggerConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

type AuthConfig struct {
	TriggerSecret  string        `mapstructure:"trigger_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// EnumerationConfig holds the read-only credential set for the external
// reconnaissance sources. Empty values are allowed; a source with missing
// credentials short-circuits to an empty result at fetch time.
type EnumerationConfig struct {
	ChunkSize      int    `mapstructure:"chunk_size"`
	SecurityTrails string `mapstructure:"securitytrails_api_key"`
	CensysID       string `mapstructure:"censys_api_id"`
	CensysSecret   string `mapstructure:"censys_api_secret"`
	CertSpotter    string `mapstructure:"certspotter_api_key"`
	BinaryEdge     string `mapstructure:"binaryedge_api_key"`
	BuiltWith      string `mapstructure:"builtwith_api_key"`
	Fofa           string `mapstructure:"fofa_api_key"`
	FullHunt       string `mapstructure:"fullhunt_api_key"`
	GitHub         string `mapstructure:"github_api_key"`
	IntelX         string `mapstructure:"intelx_api_key"`
	LeakIX         string `mapstructure:"leakix_api_key"`
	Netlas         string `mapstructure:"netlas_api_key"`
	BeVigil        string `mapstructure:"bevigil_api_key"`
	Chaos          string `mapstructure:"chaos_api_key"`
	Shodan         string `mapstructure:"shodan_api_key"`
}

type FeaturesConfig struct {
	RequestIDHeader      string `mapstructure:"request_id_header"`
	EnableRequestLogging bool   `mapstructure:"enable_request_logging"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("BUGBESTY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Enumeration.ChunkSize <= 0 {
		cfg.Enumeration.ChunkSize = 5
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	}

	return &cfg, nil
}
