package models

// NoteItem represents one note scraped from the explore feed. A record is
// created once per distinct note per session and never mutated afterwards.
type NoteItem struct {
	ID         string   `json:"id" validate:"required"`
	Title      string   `json:"title"`
	URL        string   `json:"url" validate:"required,url"`
	Author     string   `json:"author"`
	AuthorLink string   `json:"author_link" validate:"omitempty,url"`
	Likes      int      `json:"likes" validate:"gte=0"`
	Cover      string   `json:"cover"`
	Images     []string `json:"images"`
	// Timestamp is the capture time in seconds since epoch, not the note's
	// publish time.
	Timestamp int64 `json:"timestamp" validate:"gt=0"`
}

// ExportRecord is the flattened shape written by the JSON exporter.
// Images are intentionally omitted from exports.
type ExportRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	AuthorLink string `json:"author_link"`
	NoteLink   string `json:"note_link"`
	Likes      int    `json:"likes"`
	Cover      string `json:"cover"`
	Timestamp  int64  `json:"timestamp"`
}

// Export flattens a NoteItem for file export.
func (n NoteItem) Export() ExportRecord {
	return ExportRecord{
		ID:         n.ID,
		Title:      n.Title,
		Author:     n.Author,
		AuthorLink: n.AuthorLink,
		NoteLink:   n.URL,
		Likes:      n.Likes,
		Cover:      n.Cover,
		Timestamp:  n.Timestamp,
	}
}

// PageStatus is the structured report returned by a scroll probe.
type PageStatus struct {
	Height    int64 `json:"height"`
	ItemCount int64 `json:"item_count"`
	Loading   bool  `json:"loading"`
}
