package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const DefaultPostFormat = "New post on /{board}/: {sub} {com}..."

// TwitterCredentials are the OAuth1 user-context credentials for the
// microblog adapter.
type TwitterCredentials struct {
	ApiKey            string
	ApiSecretKey      string
	AccessToken       string
	AccessTokenSecret string
}

// BlueskyCredentials identify an account on the federated platform.
type BlueskyCredentials struct {
	Host     string
	Handle   string
	Password string
}

// Config is the full process configuration, materialized once at startup
// from environment variables (optionally seeded from .env files).
type Config struct {
	EnableTwitter bool
	EnableBluesky bool

	// Required platforms abort the process when authentication fails;
	// optional ones are disabled for the run instead.
	TwitterRequired bool
	BlueskyRequired bool

	DomainName string
	// BoardUrl is the feed endpoint, with an optional {domain} placeholder.
	BoardUrl string

	PostFormat  string
	HashtagName string
	// BodyLimit is the base body truncation applied before any platform
	// suffixing.
	BodyLimit int

	MinThreadAge time.Duration

	FallbackImageUrl string

	// StateDir holds the per-platform published-key files.
	StateDir string

	LogFile      string
	LogMaxSizeMb int

	Twitter TwitterCredentials
	Bluesky BlueskyCredentials
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENABLE_TWITTER", false)
	v.SetDefault("ENABLE_BLUESKY", false)
	v.SetDefault("TWITTER_REQUIRED", false)
	v.SetDefault("BLUESKY_REQUIRED", false)
	v.SetDefault("POST_FORMAT", DefaultPostFormat)
	v.SetDefault("TIME_INTERVAL_HOURS", 3.0)
	v.SetDefault("BODY_LIMIT", 150)
	v.SetDefault("STATE_DIR", ".")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("BLUESKY_HOST", "https://bsky.social")
}

// Load reads the process configuration from the environment. It returns an
// error for missing required settings, which the caller treats as fatal.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		EnableTwitter:    v.GetBool("ENABLE_TWITTER"),
		EnableBluesky:    v.GetBool("ENABLE_BLUESKY"),
		TwitterRequired:  v.GetBool("TWITTER_REQUIRED"),
		BlueskyRequired:  v.GetBool("BLUESKY_REQUIRED"),
		DomainName:       v.GetString("DOMAIN_NAME"),
		BoardUrl:         v.GetString("BOARD_URL"),
		PostFormat:       v.GetString("POST_FORMAT"),
		HashtagName:      v.GetString("HASHTAG_NAME"),
		BodyLimit:        v.GetInt("BODY_LIMIT"),
		MinThreadAge:     time.Duration(v.GetFloat64("TIME_INTERVAL_HOURS") * float64(time.Hour)),
		FallbackImageUrl: v.GetString("FALLBACK_IMAGE_URL"),
		StateDir:         v.GetString("STATE_DIR"),
		LogFile:          v.GetString("LOG_FILE"),
		LogMaxSizeMb:     v.GetInt("LOG_MAX_SIZE_MB"),
		Twitter: TwitterCredentials{
			ApiKey:            v.GetString("API_KEY"),
			ApiSecretKey:      v.GetString("API_SECRET_KEY"),
			AccessToken:       v.GetString("ACCESS_TOKEN"),
			AccessTokenSecret: v.GetString("ACCESS_TOKEN_SECRET"),
		},
		Bluesky: BlueskyCredentials{
			Host:     v.GetString("BLUESKY_HOST"),
			Handle:   v.GetString("BLUESKY_HANDLE"),
			Password: v.GetString("BLUESKY_PASSWORD"),
		},
	}

	// The feed endpoint template can reference the public domain name.
	cfg.BoardUrl = strings.ReplaceAll(cfg.BoardUrl, "{domain}", cfg.DomainName)

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.DomainName == "" {
		return errors.New("DOMAIN_NAME must be set")
	}
	if c.BoardUrl == "" {
		return errors.New("BOARD_URL must be set")
	}
	if (c.EnableTwitter || c.EnableBluesky) && c.HashtagName == "" {
		return errors.New("HASHTAG_NAME must be set when a platform is enabled")
	}
	if c.EnableTwitter && c.Twitter.ApiKey == "" {
		return errors.New("twitter is enabled but API_KEY is not set")
	}
	if c.EnableBluesky && c.Bluesky.Handle == "" {
		return errors.New("bluesky is enabled but BLUESKY_HANDLE is not set")
	}
	return nil
}
