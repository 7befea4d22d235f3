package models

type RenderMode string

const (
	RenderStatic RenderMode = "static"
	RenderJS     RenderMode = "js"
)

type Source string

const (
	SourceFile     Source = "file"
	SourceDatabase Source = "database"
)

// TrackedItem is one URL under monitoring, merged from either config source.
type TrackedItem struct {
	ID                 uint // database row id; zero for file-backed items
	Name               string
	URL                string
	Selector           string
	RenderMode         RenderMode
	ExpiresOn          string // YYYY-MM-DD, empty means never
	NotifyEmail        string // empty means track silently
	NotifierCredential string
	Interval           string
	Source             Source

	// InlineBaseline carries the current baseline for database-backed items,
	// denormalized onto the descriptor so reconciliation needs no extra read.
	// nil means no baseline exists yet.
	InlineBaseline *string
}

type TrackedItems []*TrackedItem

func (t *TrackedItem) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.URL
}
