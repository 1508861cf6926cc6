package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	twitter "github.com/anatolykoptev/go-rtbot"
	"github.com/anatolykoptev/go-rtbot/internal/config"
	"github.com/anatolykoptev/go-rtbot/internal/cursor"
	"github.com/anatolykoptev/go-rtbot/internal/dispatch"
	"github.com/anatolykoptev/go-rtbot/internal/mailbox"
	"github.com/anatolykoptev/go-rtbot/internal/templates"
)

// SetupLogging installs a text handler on stderr at the given level (debug, info, warn, error).
func SetupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// NewAuthorizer picks OAuth1 when any OAuth1 field is set, bearer otherwise.
func NewAuthorizer(cfg config.Config) (twitter.Authorizer, error) {
	if cfg.UsesOAuth1() {
		signer, err := twitter.NewOAuth1Signer(twitter.OAuth1Credentials{
			ConsumerKey:       cfg.X.ConsumerKey,
			ConsumerSecret:    cfg.X.ConsumerSecret,
			AccessToken:       cfg.X.AccessToken,
			AccessTokenSecret: cfg.X.AccessTokenSecret,
		})
		if err != nil {
			return nil, err
		}
		return signer, nil
	}
	bearer, err := twitter.NewBearerAuth(cfg.X.Bearer)
	if err != nil {
		return nil, err
	}
	return bearer, nil
}

// NewXClient builds the X API client from cfg.
func NewXClient(cfg config.Config) (*twitter.Client, error) {
	auth, err := NewAuthorizer(cfg)
	if err != nil {
		return nil, err
	}
	return twitter.NewClient(twitter.ClientConfig{
		Auth:    auth,
		APIBase: cfg.X.APIBase,
		Proxy:   cfg.X.Proxy,
	})
}

// NewDispatcher loads both template lists and binds them to social.
func NewDispatcher(cfg config.Config, social dispatch.SocialClient) (*dispatch.Dispatcher, error) {
	set, err := templates.Load(cfg.RTListPath, cfg.TagListPath)
	if err != nil {
		return nil, err
	}
	return &dispatch.Dispatcher{
		Social:    social,
		ActorID:   cfg.ActorUserID,
		Templates: set,
		Delay:     cfg.ReplyDelay,
	}, nil
}

// NewMailbox returns the backend selected by cfg.Mailbox.
func NewMailbox(ctx context.Context, cfg config.Config) (mailbox.Mailbox, error) {
	switch cfg.Mailbox {
	case config.MailboxGmail:
		g, err := mailbox.NewGmail(ctx, mailbox.GmailCredentials{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RefreshToken: cfg.Google.RefreshToken,
		})
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.MailboxIMAP:
		return mailbox.NewIMAP(mailbox.IMAPConfig{
			Addr:     cfg.IMAP.Addr,
			Username: cfg.IMAP.Username,
			Password: cfg.IMAP.Password,
		}), nil
	}
	return nil, fmt.Errorf("unknown mailbox %q", cfg.Mailbox)
}

// NewTimeline wires the timeline flow. cfg must already be validated.
func NewTimeline(cfg config.Config) (*Timeline, error) {
	client, err := NewXClient(cfg)
	if err != nil {
		return nil, err
	}
	d, err := NewDispatcher(cfg, client)
	if err != nil {
		return nil, err
	}
	return &Timeline{
		Client: client,
		Cursor: cursor.New(cfg.StateDir),
		Actor:  d,
		Target: cfg.TargetUsername,
		Policy: cfg.TimelinePolicy,
	}, nil
}

// NewMail wires the mail flow. cfg must already be validated.
func NewMail(ctx context.Context, cfg config.Config) (*Mail, error) {
	client, err := NewXClient(cfg)
	if err != nil {
		return nil, err
	}
	d, err := NewDispatcher(cfg, client)
	if err != nil {
		return nil, err
	}
	mb, err := NewMailbox(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Mail{
		Mailbox: mb,
		Lock:    cursor.New(cfg.StateDir),
		Actor:   d,
		Query:   cfg.Query,
	}, nil
}
