package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/dmitrijs2005/todoapi/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Durations accept
// both "24h" strings and integer nanoseconds.
//
// Only keys present (non-zero) in the file override the defaults.
type FileConfig struct {
	HTTPAddr        string         `json:"http_addr" toml:"http_addr"`
	GRPCAddr        string         `json:"grpc_addr" toml:"grpc_addr"`
	DatabaseDSN     string         `json:"database_dsn" toml:"database_dsn"`
	SecretKey       string         `json:"secret_key" toml:"secret_key"`
	TokenTTL        timex.Duration `json:"token_ttl" toml:"token_ttl"`
	LoginRateLimit  int            `json:"login_rate_limit" toml:"login_rate_limit"`
	LoginRateBurst  int            `json:"login_rate_burst" toml:"login_rate_burst"`
	JanitorSchedule string         `json:"janitor_schedule" toml:"janitor_schedule"`
	LogLevel        string         `json:"log_level" toml:"log_level"`
	OTLPEndpoint    string         `json:"otlp_endpoint" toml:"otlp_endpoint"`
}

// parseFile loads the file named by -c/-config, if any. The format is
// picked by extension: .toml uses TOML, everything else JSON.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	fc, err := readFile(path)
	if err != nil {
		return err
	}
	fc.apply(config)
	return nil
}

func readFile(path string) (*FileConfig, error) {
	fc := &FileConfig{}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, fc); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.HTTPAddr, fc.HTTPAddr)
	setString(&config.GRPCAddr, fc.GRPCAddr)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.JanitorSchedule, fc.JanitorSchedule)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.OTLPEndpoint, fc.OTLPEndpoint)

	if fc.TokenTTL.Duration > 0 {
		config.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.LoginRateLimit > 0 {
		config.LoginRateLimit = fc.LoginRateLimit
	}
	if fc.LoginRateBurst > 0 {
		config.LoginRateBurst = fc.LoginRateBurst
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
