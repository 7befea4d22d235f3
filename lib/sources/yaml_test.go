package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pagewatch/lib/models"
)

const urlsFixture = `urls:
  - name: CS 101
    url: http://x.test/cs101
    selector: "#status"
    expires: "2030-01-01"
    notify_email: a@b.test
    js_render: true
    check_interval: hourly
  - url: http://x.test/news
    check_interval: daily
  - name: missing url entry
    check_interval: hourly
`

func writeFixture(t *testing.T, content string) *FileSource {
	path := filepath.Join(t.TempDir(), "urls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &FileSource{log: zap.NewNop(), path: path}
}

func TestFileSource_Load(t *testing.T) {
	src := writeFixture(t, urlsFixture)

	items, err := src.Load(context.Background(), "all")

	require.NoError(t, err)
	require.Len(t, items, 2) // entry without url is dropped

	first := items[0]
	assert.Equal(t, "CS 101", first.Name)
	assert.Equal(t, "http://x.test/cs101", first.URL)
	assert.Equal(t, "#status", first.Selector)
	assert.Equal(t, "2030-01-01", first.ExpiresOn)
	assert.Equal(t, "a@b.test", first.NotifyEmail)
	assert.Equal(t, models.RenderJS, first.RenderMode)
	assert.Equal(t, "hourly", first.Interval)
	assert.Equal(t, models.SourceFile, first.Source)
	assert.Nil(t, first.InlineBaseline)

	second := items[1]
	assert.Equal(t, models.RenderStatic, second.RenderMode)
	assert.Equal(t, "http://x.test/news", second.DisplayName())
}

func TestFileSource_IntervalFilter(t *testing.T) {
	src := writeFixture(t, urlsFixture)

	items, err := src.Load(context.Background(), "daily")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "http://x.test/news", items[0].URL)
}

func TestFileSource_IntervalFilterExcludesUntagged(t *testing.T) {
	src := writeFixture(t, "urls:\n  - url: http://x.test/untagged\n")

	all, err := src.Load(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	hourly, err := src.Load(context.Background(), "hourly")
	require.NoError(t, err)
	assert.Empty(t, hourly)
}

func TestFileSource_MissingFileIsEmpty(t *testing.T) {
	src := &FileSource{log: zap.NewNop(), path: filepath.Join(t.TempDir(), "nope.yaml")}

	items, err := src.Load(context.Background(), "all")

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileSource_MalformedYAMLFails(t *testing.T) {
	src := writeFixture(t, "urls: [\n")

	_, err := src.Load(context.Background(), "all")

	assert.Error(t, err)
}
