package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
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

	OpenAI struct {
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		Dimensions     int    `yaml:"dimensions"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"openai"`

	Matching struct {
		DefaultThreshold        float64 `yaml:"default_threshold"`     // minimum similarity in [0,1]
		DefaultCount            int     `yaml:"default_count"`         // result cap per request
		NicheBoost              float64 `yaml:"niche_boost"`           // similarity multiplier for niche_match
		AudienceDamp            float64 `yaml:"audience_damp"`         // similarity multiplier for audience_match
		CreatorsPerCampaign     int     `yaml:"creators_per_campaign"` // budget divisor for budget_fit tiers
		BackfillIntervalMinutes int     `yaml:"backfill_interval_minutes"`
	} `yaml:"matching"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Auth struct {
		AdminEmail        string `yaml:"admin_email"`
		AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt
	} `yaml:"auth"`
}

var AppConfig *Config

func LoadConfig() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
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

	log.Println("Loading configuration from environment variables")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Auth.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.Auth.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "text-embedding-ada-002"
	}
	if cfg.OpenAI.Dimensions == 0 {
		cfg.OpenAI.Dimensions = 1536
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = 30
	}
	if cfg.Matching.DefaultThreshold == 0 {
		cfg.Matching.DefaultThreshold = 0.5
	}
	if cfg.Matching.DefaultCount == 0 {
		cfg.Matching.DefaultCount = 10
	}
	if cfg.Matching.NicheBoost == 0 {
		cfg.Matching.NicheBoost = 1.2
	}
	if cfg.Matching.AudienceDamp == 0 {
		cfg.Matching.AudienceDamp = 0.9
	}
	if cfg.Matching.CreatorsPerCampaign == 0 {
		cfg.Matching.CreatorsPerCampaign = 10
	}
	if cfg.Matching.BackfillIntervalMinutes == 0 {
		cfg.Matching.BackfillIntervalMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
