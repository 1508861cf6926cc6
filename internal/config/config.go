// Package config builds the bot configuration once at process start.
//
// Sources, lowest precedence first: an optional YAML file named by RTBOT_CONFIG,
// a .env file in the working directory, the process environment, and for secrets
// that are still empty, the OS keychain.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the optional YAML overlay.
const EnvConfigFile = "RTBOT_CONFIG"

// Timeline policies.
const (
	PolicySinceID   = "since_id"
	PolicyFreshness = "freshness"
)

// Mailbox backends.
const (
	MailboxGmail = "gmail"
	MailboxIMAP  = "imap"
)

// Config is the complete runtime configuration. Components receive the parts they need.
type Config struct {
	X struct {
		ConsumerKey       string `yaml:"consumer_key"`
		ConsumerSecret    string `yaml:"consumer_secret"`
		AccessToken       string `yaml:"access_token"`
		AccessTokenSecret string `yaml:"access_token_secret"`
		Bearer            string `yaml:"bearer"`
		APIBase           string `yaml:"api_base"`
		Proxy             string `yaml:"proxy"`
	} `yaml:"x"`

	ActorUserID    string `yaml:"actor_user_id"`
	TargetUsername string `yaml:"target_username"`
	TimelinePolicy string `yaml:"timeline_policy"`

	Mailbox string `yaml:"mailbox"`
	Query   string `yaml:"query"`
	Google  struct {
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		RefreshToken string `yaml:"refresh_token"`
	} `yaml:"google"`
	IMAP struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"imap"`

	RTListPath  string        `yaml:"rtlist_path"`
	TagListPath string        `yaml:"taglist_path"`
	StateDir    string        `yaml:"state_dir"`
	ReplyDelay  time.Duration `yaml:"reply_delay"`
	Port        string        `yaml:"port"`
	LogLevel    string        `yaml:"log_level"`

	// WebhookMinInterval is the minimum spacing between webhook-triggered passes.
	WebhookMinInterval time.Duration `yaml:"webhook_min_interval"`
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads .env, the optional YAML overlay, the environment and the keychain.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.LookupEnv, keyringSecret)
}

// LoadFrom builds a Config from the given lookups. secret may be nil.
func LoadFrom(lookup LookupFunc, secret SecretFunc) (Config, error) {
	var cfg Config
	if path, ok := lookup(EnvConfigFile); ok && path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	if secret != nil {
		applySecrets(&cfg, secret)
	}
	cfg.defaults()
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// envBindings maps environment variables onto string fields.
func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"X_CONSUMER_KEY":        &cfg.X.ConsumerKey,
		"X_CONSUMER_SECRET":     &cfg.X.ConsumerSecret,
		"X_ACCESS_TOKEN":        &cfg.X.AccessToken,
		"X_ACCESS_TOKEN_SECRET": &cfg.X.AccessTokenSecret,
		"X_BEARER":              &cfg.X.Bearer,
		"X_API_BASE":            &cfg.X.APIBase,
		"X_PROXY":               &cfg.X.Proxy,
		"SECONDARY_USER_ID":     &cfg.ActorUserID,
		"ACTOR_USER_ID":         &cfg.ActorUserID,
		"TARGET_USERNAME":       &cfg.TargetUsername,
		"TIMELINE_POLICY":       &cfg.TimelinePolicy,
		"MAILBOX":               &cfg.Mailbox,
		"GMAIL_QUERY":           &cfg.Query,
		"GOOGLE_CLIENT_ID":      &cfg.Google.ClientID,
		"GOOGLE_CLIENT_SECRET":  &cfg.Google.ClientSecret,
		"GOOGLE_REFRESH_TOKEN":  &cfg.Google.RefreshToken,
		"IMAP_ADDR":             &cfg.IMAP.Addr,
		"IMAP_USERNAME":         &cfg.IMAP.Username,
		"IMAP_PASSWORD":         &cfg.IMAP.Password,
		"RTLIST_PATH":           &cfg.RTListPath,
		"TAGLIST_PATH":          &cfg.TagListPath,
		"STATE_DIR":             &cfg.StateDir,
		"PORT":                  &cfg.Port,
		"LOG_LEVEL":             &cfg.LogLevel,
	}
}

// ACTOR_USER_ID wins over the older SECONDARY_USER_ID name.
var envOrder = []string{"SECONDARY_USER_ID", "ACTOR_USER_ID"}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	bindings := envBindings(cfg)
	for _, key := range envOrder {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*bindings[key] = strings.TrimSpace(v)
		}
		delete(bindings, key)
	}
	for key, dst := range bindings {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	durations := map[string]*time.Duration{
		"REPLY_DELAY":          &cfg.ReplyDelay,
		"WEBHOOK_MIN_INTERVAL": &cfg.WebhookMinInterval,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
	}
	return nil
}

// defaults fills in zero-value config fields.
func (cfg *Config) defaults() {
	if cfg.TargetUsername == "" {
		cfg.TargetUsername = "SpoilSarahXO"
	}
	if cfg.TimelinePolicy == "" {
		cfg.TimelinePolicy = PolicySinceID
	}
	if cfg.Mailbox == "" {
		cfg.Mailbox = MailboxGmail
	}
	if cfg.Query == "" && cfg.Mailbox == MailboxGmail {
		cfg.Query = "newer_than:2m"
	}
	if cfg.RTListPath == "" {
		cfg.RTListPath = "RTLIST"
	}
	if cfg.TagListPath == "" {
		cfg.TagListPath = "TAGLIST"
	}
	if cfg.StateDir == "" {
		cfg.StateDir = ".state"
	}
	if cfg.ReplyDelay == 0 {
		cfg.ReplyDelay = 1200 * time.Millisecond
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.WebhookMinInterval == 0 {
		cfg.WebhookMinInterval = 10 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// UsesOAuth1 reports whether any OAuth1 field is set; if so the whole set is required.
func (cfg Config) UsesOAuth1() bool {
	x := cfg.X
	return x.ConsumerKey != "" || x.ConsumerSecret != "" || x.AccessToken != "" || x.AccessTokenSecret != ""
}
