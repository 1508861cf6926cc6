package mailbox

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func b64(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

func TestMessageText(t *testing.T) {
	msg := &gmail.Message{
		Snippet: "snippet https://x.com/s/status/3",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmail.MessagePart{
				{PartId: "0", MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("plain https://x.com/a/status/1")}},
				{PartId: "1", MimeType: "multipart/alternative", Parts: []*gmail.MessagePart{
					{PartId: "1.0", MimeType: "text/html", Body: &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("<a href=\"https://twitter.com/b/status/2\">x</a>"))}},
				}},
				{PartId: "2", MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: "!!!not base64!!!"}},
				{PartId: "3", MimeType: "image/png", Body: &gmail.MessagePartBody{AttachmentId: "att"}},
			},
		},
	}

	text := messageText(msg)
	assert.Equal(t, "plain https://x.com/a/status/1https://twitter.com/b/status/2\nx\nsnippet https://x.com/s/status/3", text)
}

func TestMessageTextSinglePartAndNoPayload(t *testing.T) {
	single := &gmail.Message{
		Snippet: "s",
		Payload: &gmail.MessagePart{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("body")}},
	}
	assert.Equal(t, "body\ns", messageText(single))
	assert.Equal(t, "\nonly snippet", messageText(&gmail.Message{Snippet: "only snippet"}))
}

func TestGmailSearchAndFetch(t *testing.T) {
	var gotQuery, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/users/me/messages"):
			gotQuery = r.URL.Query().Get("q")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"messages": []map[string]string{{"id": "m1", "threadId": "t1"}, {"id": "m2", "threadId": "t2"}},
			})
		case strings.HasSuffix(r.URL.Path, "/users/me/messages/m1"):
			gotFormat = r.URL.Query().Get("format")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":      "m1",
				"snippet": "hello",
				"payload": map[string]any{
					"mimeType": "text/plain",
					"body":     map[string]string{"data": b64("see https://x.com/foo/status/123")},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc, err := gmail.NewService(context.Background(), option.WithHTTPClient(srv.Client()), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	g := NewGmailService(svc)

	ids, err := g.Search(context.Background(), "newer_than:2m")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)
	assert.Equal(t, "newer_than:2m", gotQuery)

	body, err := g.FetchBody(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "see https://x.com/foo/status/123\nhello", body)
	assert.Equal(t, "full", gotFormat)

	_, err = g.FetchBody(context.Background(), "missing")
	require.Error(t, err)
}
