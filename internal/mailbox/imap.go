package mailbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
)

// IMAPConfig holds the login for an IMAP-over-TLS mailbox.
type IMAPConfig struct {
	Addr     string // host:port
	Username string
	Password string

	// Lookback limits SEARCH to messages received since now-Lookback. Default 1h.
	Lookback time.Duration
}

// IMAP reads INBOX read-only. The connection is opened on first use; call Close when done.
type IMAP struct {
	cfg    IMAPConfig
	client *imapclient.Client
}

// NewIMAP returns an unconnected IMAP mailbox.
func NewIMAP(cfg IMAPConfig) *IMAP {
	if cfg.Lookback == 0 {
		cfg.Lookback = time.Hour
	}
	return &IMAP{cfg: cfg}
}

func (m *IMAP) connect() (*imapclient.Client, error) {
	if m.client != nil {
		return m.client, nil
	}
	if m.cfg.Addr == "" {
		return nil, errors.New("imap addr is required")
	}
	host, _, _ := strings.Cut(m.cfg.Addr, ":")
	c, err := imapclient.DialTLS(m.cfg.Addr, &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}
	if err := c.Login(m.cfg.Username, m.cfg.Password).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	if _, err := c.Select("INBOX", &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("imap select inbox: %w", err)
	}
	m.client = c
	return c, nil
}

// Search returns UIDs of recent messages whose text contains query (all recent messages when query is empty).
func (m *IMAP) Search(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := m.connect()
	if err != nil {
		return nil, err
	}
	criteria := &imap.SearchCriteria{Since: time.Now().Add(-m.cfg.Lookback)}
	if q := strings.TrimSpace(query); q != "" {
		criteria.Text = []string{q}
	}
	data, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search: %w", err)
	}
	uids := data.AllUIDs()
	ids := make([]string, len(uids))
	for i, uid := range uids {
		ids[i] = strconv.FormatUint(uint64(uid), 10)
	}
	slog.Debug("imap search", slog.String("query", query), slog.Int("messages", len(ids)))
	return ids, nil
}

// FetchBody returns the text parts of the message with the given UID.
// BODY.PEEK[] is used so the message keeps its \Seen state.
func (m *IMAP) FetchBody(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return "", fmt.Errorf("imap uid %q: %w", id, err)
	}
	c, err := m.connect()
	if err != nil {
		return "", err
	}

	section := &imap.FetchItemBodySection{Specifier: imap.PartSpecifierNone, Peek: true}
	cmd := c.Fetch(imap.UIDSetNum(imap.UID(uid)), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	})
	defer func() { _ = cmd.Close() }()

	msg := cmd.Next()
	if msg == nil {
		return "", fmt.Errorf("imap fetch %s: message not found", id)
	}
	buf, err := msg.Collect()
	if err != nil {
		return "", fmt.Errorf("imap fetch collect: %w", err)
	}
	return rfc822Text(buf.FindBodySection(section)), nil
}

// Close logs out and closes the connection, if one was opened.
func (m *IMAP) Close() error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Logout().Wait(); err != nil {
		slog.Debug("imap logout", slog.Any("error", err))
	}
	err := m.client.Close()
	m.client = nil
	return err
}

// rfc822Text concatenates the inline parts of a raw message.
// Unparseable input is returned as-is.
func rfc822Text(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	var b strings.Builder
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Debug("stop reading mime parts", slog.Any("error", err))
			break
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		body, err := io.ReadAll(p.Body)
		if err != nil {
			continue
		}
		if ct, _, _ := h.ContentType(); isHTML(ct) {
			b.WriteString(htmlText(body))
		} else {
			b.Write(body)
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return string(raw)
	}
	return b.String()
}
