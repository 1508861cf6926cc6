// Package mailbox reads message text from a mail provider.
// Bodies are a best-effort text blob to scan for links, not a MIME model.
package mailbox

import "context"

// Mailbox lists messages matching a query and returns their text.
type Mailbox interface {
	Search(ctx context.Context, query string) ([]string, error)
	FetchBody(ctx context.Context, id string) (string, error)
}
