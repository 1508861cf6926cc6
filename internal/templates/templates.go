// Package templates loads reply templates and fills their placeholders.
package templates

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
)

// ErrEmptyList is returned when a template file yields no usable lines.
var ErrEmptyList = errors.New("template list is empty")

// Set holds the two reply lists: the first reply is drawn from Retweet, the second from Tag.
type Set struct {
	Retweet []string
	Tag     []string
}

// Load reads both lists. Either being empty (or unreadable) is an error.
func Load(rtPath, tagPath string) (Set, error) {
	s := Set{Retweet: ReadLines(rtPath), Tag: ReadLines(tagPath)}
	if len(s.Retweet) == 0 {
		return s, fmt.Errorf("%w: %s", ErrEmptyList, rtPath)
	}
	if len(s.Tag) == 0 {
		return s, fmt.Errorf("%w: %s", ErrEmptyList, tagPath)
	}
	return s, nil
}

// ReadLines returns the trimmed, non-blank lines of path. Read errors yield an empty list.
func ReadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Debug("template file unreadable", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the math/rand/v2 global generator.
var DefaultSource RandSource = globalSource{}

// Pick returns a uniformly random element of list. list must not be empty.
func Pick(r RandSource, list []string) string {
	return list[r.IntN(len(list))]
}

// Fill replaces every {handle} and {url} token literally.
func Fill(tmpl, handle, url string) string {
	return strings.NewReplacer("{handle}", handle, "{url}", url).Replace(tmpl)
}
