package models

import (
	"database/sql"

	"gorm.io/gorm"
)

// TrackedURL is one row of the tracker table. Baseline content lives on the
// row itself; there is no history table, each check overwrites in place.
type TrackedURL struct {
	gorm.Model
	Name          string
	URL           string `gorm:"index"`
	Selector      string
	JSRender      bool
	CheckInterval string
	ExpiresAt     string // YYYY-MM-DD, empty means never
	Email         string
	MailgunAPIKey string

	BaselineContent sql.NullString
	BaselineHash    string
	LastCheckedAt   sql.NullTime
	LastChangeAt    sql.NullTime
	IsActive        bool
}

type TrackedURLs []TrackedURL

func (row *TrackedURL) Item() *TrackedItem {
	item := &TrackedItem{
		ID:                 row.ID,
		Name:               row.Name,
		URL:                row.URL,
		Selector:           row.Selector,
		RenderMode:         RenderStatic,
		ExpiresOn:          row.ExpiresAt,
		NotifyEmail:        row.Email,
		NotifierCredential: row.MailgunAPIKey,
		Interval:           row.CheckInterval,
		Source:             SourceDatabase,
	}
	if row.JSRender {
		item.RenderMode = RenderJS
	}
	if row.BaselineContent.Valid {
		content := row.BaselineContent.String
		item.InlineBaseline = &content
	}
	return item
}
