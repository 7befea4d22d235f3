package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLKey(t *testing.T) {
	key := URLKey("http://x.test/a")

	assert.Len(t, key, 12)
	assert.Regexp(t, "^[0-9a-f]{12}$", key)
	assert.Equal(t, DigestContent("http://x.test/a")[:12], key)
	assert.Equal(t, key, URLKey("http://x.test/a"))
	assert.NotEqual(t, key, URLKey("http://x.test/b"))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "expired", OutcomeExpired.String())
	assert.Equal(t, "fetchFailed", OutcomeFetchFailed.String())
	assert.Equal(t, "newBaseline", OutcomeNewBaseline.String())
	assert.Equal(t, "changed", OutcomeChanged.String())
	assert.Equal(t, "unchanged", OutcomeUnchanged.String())
}

func TestDisplayName(t *testing.T) {
	named := &TrackedItem{Name: "CS 101", URL: "http://x.test/a"}
	assert.Equal(t, "CS 101", named.DisplayName())

	unnamed := &TrackedItem{URL: "http://x.test/a"}
	assert.Equal(t, "http://x.test/a", unnamed.DisplayName())
}

func TestTrackedURLItem(t *testing.T) {
	row := &TrackedURL{
		Name:          "CS 101",
		URL:           "http://x.test/a",
		JSRender:      true,
		CheckInterval: "hourly",
		ExpiresAt:     "2030-01-01",
	}
	row.ID = 7

	item := row.Item()

	assert.Equal(t, uint(7), item.ID)
	assert.Equal(t, RenderJS, item.RenderMode)
	assert.Equal(t, SourceDatabase, item.Source)
	assert.Equal(t, "2030-01-01", item.ExpiresOn)
	assert.Nil(t, item.InlineBaseline)
}
