package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// JSONConfig описывает JSON-файл конфигурации.
// Отсутствующее в файле поле остается nil и не меняет конфигурацию.
type JSONConfig struct {
	ServerAddress  *string `json:"server_address,omitempty"`
	ShortenerURL   *string `json:"shortener_url,omitempty"`
	RequestTimeout *string `json:"request_timeout,omitempty"`
	SessionSecret  *string `json:"session_secret,omitempty"`
	SessionTTL     *string `json:"session_ttl,omitempty"`
	EnableHTTPS    *bool   `json:"enable_https,omitempty"`
	TLSCertFile    *string `json:"tls_cert_file,omitempty"`
	TLSKeyFile     *string `json:"tls_key_file,omitempty"`
	LogLevel       *string `json:"log_level,omitempty"`
	LogFile        *string `json:"log_file,omitempty"`
}

// loadJSONConfig читает файл конфигурации.
// Пустое имя и несуществующий файл дают пустую конфигурацию.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	cfg := &JSONConfig{}
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (j *JSONConfig) validate() error {
	for name, v := range map[string]*string{"request_timeout": j.RequestTimeout, "session_ttl": j.SessionTTL} {
		if v == nil {
			continue
		}
		if _, err := time.ParseDuration(*v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// applyJSONConfig переносит заданные в файле значения в конфигурацию.
func (c *Config) applyJSONConfig(j *JSONConfig) {
	if j == nil {
		return
	}
	setString(&c.ServerAddress, j.ServerAddress)
	setString(&c.ShortenerURL, j.ShortenerURL)
	setDuration(&c.RequestTimeout, j.RequestTimeout)
	setString(&c.SessionSecret, j.SessionSecret)
	setDuration(&c.SessionTTL, j.SessionTTL)
	if j.EnableHTTPS != nil {
		c.EnableHTTPS = ""
		if *j.EnableHTTPS {
			c.EnableHTTPS = "true"
		}
	}
	setString(&c.TLSCertFile, j.TLSCertFile)
	setString(&c.TLSKeyFile, j.TLSKeyFile)
	setString(&c.LogLevel, j.LogLevel)
	setString(&c.LogFile, j.LogFile)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setDuration ожидает значение, уже проверенное validate.
func setDuration(dst *time.Duration, v *string) {
	if v == nil {
		return
	}
	if d, err := time.ParseDuration(*v); err == nil {
		*dst = d
	}
}
