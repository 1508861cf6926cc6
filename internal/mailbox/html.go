package mailbox

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlText flattens an HTML part to its anchor targets (one per line) followed by its visible text.
// Unparseable input is returned as-is.
func htmlText(raw []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	doc.Find("script,style").Remove()

	var b strings.Builder
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			b.WriteString(strings.TrimSpace(href))
			b.WriteString("\n")
		}
	})
	b.WriteString(doc.Text())
	return b.String()
}

func isHTML(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "text/html")
}
