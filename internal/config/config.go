package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"ENV"  envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	DBPath     string `env:"DB_PATH"     envDefault:"pressdesk.sqlite"`
	DraftsPath string `env:"DRAFTS_PATH" envDefault:"drafts.json"`
	UploadDir  string `env:"UPLOAD_DIR"  envDefault:"uploads"`

	BasePublicURL string `env:"BASE_PUBLIC_URL" envDefault:"http://localhost:8080"`

	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	LLMModel        string `env:"LLM_MODEL"         envDefault:"gpt-4o-mini"`
	MaxContextChars int    `env:"MAX_CONTEXT_CHARS" envDefault:"60000"`

	ShortPostLimit int `env:"SHORT_POST_LIMIT" envDefault:"280"`

	NewsFeeds     []string      `env:"NEWS_FEEDS"`
	NewsCachePath string        `env:"NEWS_CACHE_PATH" envDefault:"news_cache.json"`
	NewsTTL       time.Duration `env:"NEWS_TTL"        envDefault:"15m"`

	FBPageID          string `env:"FB_PAGE_ID"`
	FBPageAccessToken string `env:"FB_PAGE_ACCESS_TOKEN"`
	IGUserID          string `env:"IG_USER_ID"`
	LinkedInToken     string `env:"LINKEDIN_ACCESS_TOKEN"`
	LinkedInOrgID     string `env:"LINKEDIN_ORG_ID"`
	XBearerToken      string `env:"X_BEARER_TOKEN"`
	TelegramToken     string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID    string `env:"TELEGRAM_CHAT_ID"`
}

// Load reads .env when present, then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
