package templates

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "RTLIST", "first\r\n\n  second  \n\t\nthird")
	assert.Equal(t, []string{"first", "second", "third"}, ReadLines(p))
	assert.Empty(t, ReadLines(filepath.Join(dir, "missing")))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	rt := writeFile(t, dir, "RTLIST", "a\nb\n")
	tag := writeFile(t, dir, "TAGLIST", "#x\n")
	empty := writeFile(t, dir, "EMPTY", "\n\n")

	s, err := Load(rt, tag)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Retweet)
	assert.Equal(t, []string{"#x"}, s.Tag)

	_, err = Load(empty, tag)
	assert.True(t, errors.Is(err, ErrEmptyList))

	_, err = Load(rt, filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrEmptyList))
}

func TestFill(t *testing.T) {
	tests := []struct {
		tmpl, want string
	}{
		{"RT @{handle} {url}", "RT @someone https://twitter.com/someone/status/1"},
		{"{handle}{handle}", "someonesomeone"},
		{"no tokens", "no tokens"},
		{"{HANDLE} {other}", "{HANDLE} {other}"},
	}
	for _, tt := range tests {
		if got := Fill(tt.tmpl, "someone", "https://twitter.com/someone/status/1"); got != tt.want {
			t.Fatalf("Fill(%q) = %q, want %q", tt.tmpl, got, tt.want)
		}
	}
}

func TestFillIsLiteral(t *testing.T) {
	// Substituted values are not re-expanded or escaped.
	assert.Equal(t, "<{url}> & x", Fill("<{handle}> & x", "{url}", "u"))
}

type seqSource struct {
	seq []int
	i   int
}

func (s *seqSource) IntN(n int) int {
	v := s.seq[s.i%len(s.seq)] % n
	s.i++
	return v
}

func TestPickDeterministic(t *testing.T) {
	list := []string{"a", "b", "c"}
	src := &seqSource{seq: []int{2, 0, 1}}
	assert.Equal(t, "c", Pick(src, list))
	assert.Equal(t, "a", Pick(src, list))
	assert.Equal(t, "b", Pick(src, list))
}

func TestPickCoversListAndStaysInside(t *testing.T) {
	list := []string{"t1", "t2", "t3", "t4", "t5"}
	allowed := map[string]bool{}
	for _, s := range list {
		allowed[s] = true
	}

	sources := []RandSource{DefaultSource, rand.New(rand.NewPCG(1, 2))}
	for _, src := range sources {
		seen := map[string]int{}
		for range 2000 {
			got := Pick(src, list)
			require.True(t, allowed[got], "picked %q outside the list", got)
			seen[got]++
		}
		assert.Len(t, seen, len(list))
	}
}
