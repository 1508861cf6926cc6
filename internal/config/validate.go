package config

import (
	"fmt"
	"strings"
)

// Flow selects which settings Validate requires.
type Flow int

const (
	FlowTimeline Flow = iota
	FlowMail
)

// Error lists every configuration problem found. Runs must not touch the network when it is returned.
type Error struct {
	Missing  []string
	Problems []string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return "config: " + strings.Join(parts, "; ")
}

// Validate checks that everything the flow needs is present.
func (cfg Config) Validate(flow Flow) error {
	e := &Error{}
	require := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			e.Missing = append(e.Missing, name)
		}
	}

	switch {
	case cfg.UsesOAuth1():
		require("X_CONSUMER_KEY", cfg.X.ConsumerKey)
		require("X_CONSUMER_SECRET", cfg.X.ConsumerSecret)
		require("X_ACCESS_TOKEN", cfg.X.AccessToken)
		require("X_ACCESS_TOKEN_SECRET", cfg.X.AccessTokenSecret)
	case cfg.X.Bearer == "":
		e.Missing = append(e.Missing, "X_CONSUMER_KEY/X_CONSUMER_SECRET/X_ACCESS_TOKEN/X_ACCESS_TOKEN_SECRET or X_BEARER")
	}
	require("ACTOR_USER_ID", cfg.ActorUserID)

	if cfg.ReplyDelay < 0 {
		e.Problems = append(e.Problems, fmt.Sprintf("REPLY_DELAY must not be negative (got %s)", cfg.ReplyDelay))
	}

	if cfg.WebhookMinInterval < 0 {
		e.Problems = append(e.Problems, fmt.Sprintf("WEBHOOK_MIN_INTERVAL must not be negative (got %s)", cfg.WebhookMinInterval))
	}

	switch flow {
	case FlowTimeline:
		require("TARGET_USERNAME", cfg.TargetUsername)
		if cfg.TimelinePolicy != PolicySinceID && cfg.TimelinePolicy != PolicyFreshness {
			e.Problems = append(e.Problems, fmt.Sprintf("TIMELINE_POLICY must be %q or %q (got %q)", PolicySinceID, PolicyFreshness, cfg.TimelinePolicy))
		}
	case FlowMail:
		switch cfg.Mailbox {
		case MailboxGmail:
			require("GOOGLE_CLIENT_ID", cfg.Google.ClientID)
			require("GOOGLE_CLIENT_SECRET", cfg.Google.ClientSecret)
			require("GOOGLE_REFRESH_TOKEN", cfg.Google.RefreshToken)
		case MailboxIMAP:
			require("IMAP_ADDR", cfg.IMAP.Addr)
			require("IMAP_USERNAME", cfg.IMAP.Username)
			require("IMAP_PASSWORD", cfg.IMAP.Password)
		default:
			e.Problems = append(e.Problems, fmt.Sprintf("MAILBOX must be %q or %q (got %q)", MailboxGmail, MailboxIMAP, cfg.Mailbox))
		}
	}

	if len(e.Missing) > 0 || len(e.Problems) > 0 {
		return e
	}
	return nil
}
