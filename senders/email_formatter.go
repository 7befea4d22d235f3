package senders

import (
	"fmt"
	"html"
	"time"

	"pagewatch/lib/models"
)

const previewLength = 500

type changeEmailFormat struct {
	item     *models.TrackedItem
	old, new string
}

func (ef *changeEmailFormat) Subject() string {
	return fmt.Sprintf("Change detected: %s", ef.item.DisplayName())
}

func (ef *changeEmailFormat) Body() string {
	return fmt.Sprintf(
		`
			<h2>Change detected: %s</h2>
			<p>The content has changed on your tracked page:</p>
			<p><a href="%s">%s</a></p>

			<h4>Previous:</h4>
			<pre>%s</pre>

			<h4>New:</h4>
			<pre>%s</pre>

			<p>Detected at %s</p>
		`,
		html.EscapeString(ef.item.DisplayName()),
		ef.item.URL, ef.item.URL,
		html.EscapeString(preview(ef.old)),
		html.EscapeString(preview(ef.new)),
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
	)
}

// preview bounds content to previewLength characters so message size stays
// bounded regardless of page size.
func preview(content string) string {
	if len(content) > previewLength {
		return content[:previewLength] + "..."
	}
	return content
}
