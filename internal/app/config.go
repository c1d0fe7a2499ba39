package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/services"
	"github.com/allinhq/allin-backend/internal/utils"
)

type Config struct {
	ListenAddr   string   `yaml:"listen_addr"`
	AllowOrigins []string `yaml:"allow_origins"`

	JWTSecretKey    string        `yaml:"jwt_secret_key"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`

	Groq struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		DefaultModel   string `yaml:"default_model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"groq"`

	Tasks struct {
		QuietHoursStart int `yaml:"quiet_hours_start"`
		QuietHoursEnd   int `yaml:"quiet_hours_end"`
		MinMinutes      int `yaml:"min_minutes"`
		MaxMinutes      int `yaml:"max_minutes"`
	} `yaml:"tasks"`

	Redis struct {
		Addr            string `yaml:"addr"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"redis"`
}

// LoadConfig builds the runtime configuration: defaults, then the optional
// YAML file named by CONFIG_FILE, then environment overrides on top.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		ListenAddr:      ":8080",
		AllowOrigins:    []string{"http://localhost:3000"},
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
	cfg.Groq.BaseURL = "https://api.groq.com/openai/v1"
	cfg.Groq.DefaultModel = "llama-3.1-8b-instant"
	cfg.Groq.TimeoutSeconds = 60
	defaults := services.DefaultPromptOptions()
	cfg.Tasks.QuietHoursStart = defaults.QuietHoursStart
	cfg.Tasks.QuietHoursEnd = defaults.QuietHoursEnd
	cfg.Tasks.MinMinutes = defaults.MinTaskMinutes
	cfg.Tasks.MaxMinutes = defaults.MaxTaskMinutes
	cfg.Redis.CacheTTLMinutes = 360

	if path := utils.GetEnv("CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.ListenAddr = utils.GetEnv("LISTEN_ADDR", cfg.ListenAddr, log)
	if origins := utils.GetEnv("ALLOW_ORIGINS", "", log); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "defaultsecret"
	}
	cfg.AccessTokenTTL = time.Duration(utils.GetEnvAsInt("ACCESS_TOKEN_TTL", int(cfg.AccessTokenTTL.Seconds()), log)) * time.Second
	cfg.RefreshTokenTTL = time.Duration(utils.GetEnvAsInt("REFRESH_TOKEN_TTL", int(cfg.RefreshTokenTTL.Seconds()), log)) * time.Second

	cfg.Groq.BaseURL = utils.GetEnv("GROQ_BASE_URL", cfg.Groq.BaseURL, log)
	cfg.Groq.APIKey = utils.GetEnv("GROQ_API_KEY", cfg.Groq.APIKey, log)
	cfg.Groq.DefaultModel = utils.GetEnv("GROQ_MODEL", cfg.Groq.DefaultModel, log)
	cfg.Groq.TimeoutSeconds = utils.GetEnvAsInt("GROQ_TIMEOUT_SECONDS", cfg.Groq.TimeoutSeconds, log)

	cfg.Tasks.QuietHoursStart = utils.GetEnvAsInt("QUIET_HOURS_START", cfg.Tasks.QuietHoursStart, log)
	cfg.Tasks.QuietHoursEnd = utils.GetEnvAsInt("QUIET_HOURS_END", cfg.Tasks.QuietHoursEnd, log)
	cfg.Tasks.MinMinutes = utils.GetEnvAsInt("TASK_MIN_MINUTES", cfg.Tasks.MinMinutes, log)
	cfg.Tasks.MaxMinutes = utils.GetEnvAsInt("TASK_MAX_MINUTES", cfg.Tasks.MaxMinutes, log)

	cfg.Redis.Addr = utils.GetEnv("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.Password = utils.GetEnv("REDIS_PASSWORD", cfg.Redis.Password, log)
	cfg.Redis.DB = utils.GetEnvAsInt("REDIS_DB", cfg.Redis.DB, log)

	return cfg, nil
}

func (c Config) GroqConfig() services.GroqConfig {
	return services.GroqConfig{
		BaseURL:      c.Groq.BaseURL,
		APIKey:       c.Groq.APIKey,
		DefaultModel: c.Groq.DefaultModel,
		Timeout:      time.Duration(c.Groq.TimeoutSeconds) * time.Second,
	}
}

func (c Config) PromptOptions() services.PromptOptions {
	return services.PromptOptions{
		QuietHoursStart: c.Tasks.QuietHoursStart,
		QuietHoursEnd:   c.Tasks.QuietHoursEnd,
		MinTaskMinutes:  c.Tasks.MinMinutes,
		MaxTaskMinutes:  c.Tasks.MaxMinutes,
	}
}
