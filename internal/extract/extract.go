// Package extract finds status links in free text.
package extract

import "regexp"

var statusRe = regexp.MustCompile(`https?://(?:x\.com|twitter\.com)/([A-Za-z0-9_]+)/status/(\d+)`)

// Link is one status link found in text.
type Link struct {
	ID     string
	Handle string
	URL    string
}

// Links returns the status links in text, one per distinct ID in first-seen order.
// When an ID appears under several handles the first one wins.
func Links(text string) []Link {
	var links []Link
	seen := make(map[string]bool)
	for _, m := range statusRe.FindAllStringSubmatch(text, -1) {
		id := m[2]
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, Link{ID: id, Handle: m[1], URL: m[0]})
	}
	return links
}

// StatusIDs returns the distinct status IDs in text.
func StatusIDs(text string) []string {
	links := Links(text)
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	return ids
}

// StatusURL builds the canonical link to a status.
func StatusURL(handle, id string) string {
	return "https://twitter.com/" + handle + "/status/" + id
}
