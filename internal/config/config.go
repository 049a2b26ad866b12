package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTL        int    `yaml:"ttl"`         // время жизни access token, минуты
		RefreshTTL int    `yaml:"refresh_ttl"` // время жизни refresh token, часы
	} `yaml:"jwt"`

	Payments struct {
		Currency           string  `yaml:"currency"`             // валюта платформы, ISO 4217
		PlatformFeePercent float64 `yaml:"platform_fee_percent"` // комиссия при выплате, %
	} `yaml:"payments"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Workers struct {
		SessionCleanupMinutes  int `yaml:"session_cleanup_minutes"`
		LedgerReconcileMinutes int `yaml:"ledger_reconcile_minutes"`
	} `yaml:"workers"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60 // 1 час
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 7 * 24 // 7 дней
	}
	if cfg.Payments.Currency == "" {
		cfg.Payments.Currency = "INR"
	}
	if cfg.Payments.PlatformFeePercent == 0 {
		cfg.Payments.PlatformFeePercent = 10
	}
	if cfg.Workers.SessionCleanupMinutes == 0 {
		cfg.Workers.SessionCleanupMinutes = 60
	}
	if cfg.Workers.LedgerReconcileMinutes == 0 {
		cfg.Workers.LedgerReconcileMinutes = 360
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
