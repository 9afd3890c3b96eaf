package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleListing = "staging\tgit@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject-staging.git (fetch)\n" +
	"staging\tgit@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject-staging.git (push)\n" +
	"production\tgit@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject.git (fetch)\n" +
	"production\tgit@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject.git (push)\n" +
	"other\tgit@github.com:other.git (fetch)\n" +
	"other\tgit@github.com:other.git (push)\n"

func TestParseRemotes(t *testing.T) {
	got := ParseRemotes(sampleListing)

	want := RemoteSet{
		{Alias: "staging", URL: "git@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject-staging.git", Direction: Fetch},
		{Alias: "production", URL: "git@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject.git", Direction: Fetch},
		{Alias: "other", URL: "git@github.com:other.git", Direction: Fetch},
	}
	assert.Equal(t, want, got)
}

func TestParseRemotes_Idempotent(t *testing.T) {
	first := ParseRemotes(sampleListing)
	second := ParseRemotes(sampleListing)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"staging", "production", "other"}, second.Aliases())
}

func TestParseRemotes_FetchWins(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		wantURL string
		wantDir Direction
	}{
		{
			name:    "fetch listed first",
			listing: "origin\thttps://a.example/repo.git (fetch)\norigin\thttps://b.example/repo.git (push)\n",
			wantURL: "https://a.example/repo.git",
			wantDir: Fetch,
		},
		{
			name:    "push listed first",
			listing: "origin\thttps://b.example/repo.git (push)\norigin\thttps://a.example/repo.git (fetch)\n",
			wantURL: "https://a.example/repo.git",
			wantDir: Fetch,
		},
		{
			name:    "push only",
			listing: "origin\thttps://b.example/repo.git (push)\n",
			wantURL: "https://b.example/repo.git",
			wantDir: Push,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRemotes(tt.listing)
			if assert.Len(t, got, 1) {
				assert.Equal(t, tt.wantURL, got[0].URL)
				assert.Equal(t, tt.wantDir, got[0].Direction)
			}
		})
	}
}

func TestParseRemotes_SkipsMalformedLines(t *testing.T) {
	listing := "warning: something informational\n" +
		"\n" +
		"origin\tgit@github.com:mortarcode/abc_proj.git (fetch)\n" +
		"broken git@github.com:x.git (fetch)\n" +
		"nodirection\tgit@github.com:x.git\n" +
		"weird\tgit@github.com:x.git (pull)\n" +
		"empty\t (fetch)\n" +
		"windows\tgit@github.com:mortarcode/abc_win.git (fetch)\r\n"

	got := ParseRemotes(listing)
	assert.Equal(t, []string{"origin", "windows"}, got.Aliases())
	assert.Equal(t, "git@github.com:mortarcode/abc_win.git", got[1].URL)
}

func TestParseRemotes_Empty(t *testing.T) {
	assert.Empty(t, ParseRemotes(""))
}

func TestRemoteSetGet(t *testing.T) {
	set := ParseRemotes(sampleListing)

	r, ok := set.Get("production")
	assert.True(t, ok)
	assert.Equal(t, "git@github.com:mortarcode/4dbbd83cae8d5bf8a4000000_myproject.git", r.URL)

	_, ok = set.Get("missing")
	assert.False(t, ok)
}
