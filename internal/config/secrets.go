package config

import (
	"slices"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the bot's secrets in the OS keychain.
const KeyringService = "rtbot"

// SecretFunc looks up a secret by its environment variable name.
type SecretFunc func(name string) (string, bool)

// keyringSecret reads name from the OS keychain. Any keychain error counts as "not found".
func keyringSecret(name string) (string, bool) {
	v, err := keyring.Get(KeyringService, name)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// secretKeys are the fields that may live in the keychain instead of the environment.
func secretKeys(cfg *Config) map[string]*string {
	return map[string]*string{
		"X_CONSUMER_SECRET":     &cfg.X.ConsumerSecret,
		"X_ACCESS_TOKEN_SECRET": &cfg.X.AccessTokenSecret,
		"X_BEARER":              &cfg.X.Bearer,
		"GOOGLE_CLIENT_SECRET":  &cfg.Google.ClientSecret,
		"GOOGLE_REFRESH_TOKEN":  &cfg.Google.RefreshToken,
		"IMAP_PASSWORD":         &cfg.IMAP.Password,
	}
}

func applySecrets(cfg *Config, secret SecretFunc) {
	for name, dst := range secretKeys(cfg) {
		if *dst != "" {
			continue
		}
		if v, ok := secret(name); ok {
			*dst = v
		}
	}
}

// StoreSecret saves a secret in the OS keychain under its environment variable name.
func StoreSecret(name, value string) error {
	return keyring.Set(KeyringService, name, value)
}

// SecretNames lists the settings that may be kept in the keychain, sorted.
func SecretNames() []string {
	var cfg Config
	names := make([]string, 0, 8)
	for name := range secretKeys(&cfg) {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
