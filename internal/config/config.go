package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Referral ReferralConfig
	Booking  BookingConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AuthConfig struct {
	// HMAC secret the identity provider signs access tokens with.
	JWTSecret string
}

type ReferralConfig struct {
	CodePrefix string
	// Reserved maps a user email to the sequence number permanently
	// set aside for that account, e.g. "founder@bails.in:1".
	Reserved map[string]int
}

type BookingConfig struct {
	// Fallback when PLATFORM_COMMISSION_RATE is not set in system_config.
	DefaultCommissionRate float64
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	reserved, err := parseReservedSequences(getEnv("REFERRAL_RESERVED", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid REFERRAL_RESERVED: %w", err)
	}

	commissionRate, err := strconv.ParseFloat(getEnv("DEFAULT_COMMISSION_RATE", "0.05"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_COMMISSION_RATE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "bails"),
			Password: getEnv("DB_PASSWORD", "bails"),
			Name:     getEnv("DB_NAME", "bails"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		},
		Referral: ReferralConfig{
			CodePrefix: getEnv("REFERRAL_CODE_PREFIX", "BAILS"),
			Reserved:   reserved,
		},
		Booking: BookingConfig{
			DefaultCommissionRate: commissionRate,
		},
	}

	return cfg, nil
}

// parseReservedSequences parses "email:seq,email:seq" pairs.
func parseReservedSequences(raw string) (map[string]int, error) {
	reserved := make(map[string]int)
	if raw == "" {
		return reserved, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, seqStr, found := strings.Cut(pair, ":")
		if !found {
			return nil, fmt.Errorf("entry %q is not email:sequence", pair)
		}
		seq, err := strconv.Atoi(strings.TrimSpace(seqStr))
		if err != nil || seq < 1 {
			return nil, fmt.Errorf("entry %q has an invalid sequence number", pair)
		}
		reserved[strings.ToLower(strings.TrimSpace(email))] = seq
	}

	return reserved, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
