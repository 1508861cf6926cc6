package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const gmailUserID = "me"

// GmailCredentials is an OAuth2 client plus a long-lived refresh token.
type GmailCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Gmail reads messages through the Gmail API.
type Gmail struct {
	svc *gmail.Service
}

// NewGmail builds a Gmail client whose access tokens are minted from the refresh token on demand.
func NewGmail(ctx context.Context, creds GmailCredentials, opts ...option.ClientOption) (*Gmail, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailReadonlyScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})

	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return NewGmailService(svc), nil
}

// NewGmailService wraps an already configured service.
func NewGmailService(svc *gmail.Service) *Gmail {
	return &Gmail{svc: svc}
}

// Search returns the IDs on the first result page for query.
func (g *Gmail) Search(ctx context.Context, query string) ([]string, error) {
	resp, err := g.svc.Users.Messages.List(gmailUserID).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail list %q: %w", query, err)
	}
	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	slog.Debug("gmail search", slog.String("query", query), slog.Int("messages", len(ids)))
	return ids, nil
}

// FetchBody returns every decodable part payload followed by the snippet.
func (g *Gmail) FetchBody(ctx context.Context, id string) (string, error) {
	msg, err := g.svc.Users.Messages.Get(gmailUserID, id).Format("full").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail get %s: %w", id, err)
	}
	return messageText(msg), nil
}

// messageText concatenates decoded part bodies (depth-first) and appends the snippet.
// HTML parts are reduced to their link targets and text.
func messageText(msg *gmail.Message) string {
	var b strings.Builder
	if msg.Payload != nil {
		writePart(&b, msg.Payload)
	}
	b.WriteString("\n")
	b.WriteString(msg.Snippet)
	return b.String()
}

func writePart(b *strings.Builder, p *gmail.MessagePart) {
	if p.Body != nil && p.Body.Data != "" {
		data, ok := decodeBase64URL(p.Body.Data)
		switch {
		case !ok:
			slog.Debug("skip undecodable part", slog.String("part_id", p.PartId), slog.String("mime", p.MimeType))
		case isHTML(p.MimeType):
			b.WriteString(htmlText(data))
		default:
			b.Write(data)
		}
	}
	for _, child := range p.Parts {
		writePart(b, child)
	}
}

// decodeBase64URL accepts padded and unpadded URL-safe base64.
func decodeBase64URL(s string) ([]byte, bool) {
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return data, true
	}
	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return data, true
	}
	return nil, false
}
