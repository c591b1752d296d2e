// Package config собирает конфигурацию сервиса из значений по умолчанию,
// JSON-файла, флагов командной строки и переменных окружения.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Значения по умолчанию.
const (
	DefaultServerAddress = ":3000"
	DefaultSessionTTL    = 30 * time.Minute
	DefaultTLSCertFile   = "server.crt"
	DefaultTLSKeyFile    = "server.key"
	DefaultLogLevel      = "info"
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress  string        `env:"SERVER_ADDRESS"`  // Адрес для запуска HTTP-сервера
	ShortenerURL   string        `env:"SHORTENER_URL"`   // Базовый адрес сервиса сокращения
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"` // Таймаут запроса к сервису, 0 без таймаута
	SessionSecret  string        `env:"SESSION_SECRET"`  // Ключ подписи cookie представления
	SessionTTL     time.Duration `env:"SESSION_TTL"`     // Время жизни неактивного представления
	EnableHTTPS    string        `env:"ENABLE_HTTPS"`    // Непустое значение включает HTTPS
	TLSCertFile    string        `env:"TLS_CERT_FILE"`
	TLSKeyFile     string        `env:"TLS_KEY_FILE"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFile        string        `env:"LOG_FILE"`
	ConfigFile     string        `env:"CONFIG"` // Путь к JSON-файлу конфигурации
}

// NewConfig инициализирует конфигурацию из аргументов процесса и окружения.
func NewConfig() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse собирает конфигурацию с приоритетом:
// значения по умолчанию < JSON-файл < флаги < переменные окружения.
func Parse(args []string) (*Config, error) {
	// первый проход нужен только для того, чтобы узнать путь к JSON-файлу
	probe := defaultConfig()
	if err := probe.parseFlags(args); err != nil {
		return nil, err
	}
	configFile := probe.ConfigFile
	if v := os.Getenv("CONFIG"); v != "" {
		configFile = v
	}

	jsonConfig, err := loadJSONConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config file %q: %w", configFile, err)
	}

	cfg := defaultConfig()
	cfg.applyJSONConfig(jsonConfig)
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.ShortenerURL = strings.TrimRight(cfg.ShortenerURL, "/")
	if cfg.SessionSecret == "" {
		cfg.SessionSecret, err = randomSecret()
		if err != nil {
			return nil, err
		}
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("request timeout must not be negative: %s", cfg.RequestTimeout)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive: %s", cfg.SessionTTL)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		ServerAddress: DefaultServerAddress,
		SessionTTL:    DefaultSessionTTL,
		TLSCertFile:   DefaultTLSCertFile,
		TLSKeyFile:    DefaultTLSKeyFile,
		LogLevel:      DefaultLogLevel,
	}
}

// parseFlags разбирает флаги, используя текущие значения как значения по умолчанию.
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("shortform", flag.ContinueOnError)
	fs.StringVar(&c.ServerAddress, "a", c.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	fs.StringVar(&c.ShortenerURL, "s", c.ShortenerURL, "Базовый адрес сервиса сокращения (env: SHORTENER_URL)")
	fs.DurationVar(&c.RequestTimeout, "t", c.RequestTimeout, "Таймаут запроса к сервису сокращения (env: REQUEST_TIMEOUT)")
	fs.StringVar(&c.SessionSecret, "k", c.SessionSecret, "Ключ подписи cookie (env: SESSION_SECRET)")
	fs.DurationVar(&c.SessionTTL, "ttl", c.SessionTTL, "Время жизни неактивного представления (env: SESSION_TTL)")
	fs.BoolFunc("https", "Включить HTTPS (env: ENABLE_HTTPS)", func(v string) error {
		if v == "false" || v == "0" {
			c.EnableHTTPS = ""
			return nil
		}
		c.EnableHTTPS = "true"
		return nil
	})
	fs.StringVar(&c.TLSCertFile, "cert", c.TLSCertFile, "Файл сертификата TLS (env: TLS_CERT_FILE)")
	fs.StringVar(&c.TLSKeyFile, "key", c.TLSKeyFile, "Файл ключа TLS (env: TLS_KEY_FILE)")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "Уровень логирования (env: LOG_LEVEL)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Файл лога с ротацией (env: LOG_FILE)")
	fs.StringVar(&c.ConfigFile, "c", c.ConfigFile, "Путь к JSON-файлу конфигурации (env: CONFIG)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Путь к JSON-файлу конфигурации (env: CONFIG)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

// IsHTTPSEnabled сообщает, включен ли HTTPS.
func (c *Config) IsHTTPSEnabled() bool {
	return c.EnableHTTPS != ""
}

// IsShortenerConfigured сообщает, задан ли адрес сервиса сокращения.
func (c *Config) IsShortenerConfigured() bool {
	return c.ShortenerURL != ""
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
