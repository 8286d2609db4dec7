package scraper

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/linqiu0199/xhs-collector/internal/models"
	"github.com/linqiu0199/xhs-collector/internal/session"
	"github.com/linqiu0199/xhs-collector/internal/util"
	"github.com/linqiu0199/xhs-collector/internal/validator"
)

// Extractor turns rendered feed markup into NoteItem records. The dedup
// index is passed per call so the extractor itself stays session-free.
type Extractor struct {
	selectors SelectorConfig
	baseURL   *url.URL
	validate  *validator.Validator
}

func NewExtractor(selectors SelectorConfig, baseURL *url.URL) *Extractor {
	return &Extractor{
		selectors: selectors,
		baseURL:   baseURL,
		validate:  validator.New(),
	}
}

// Extract walks every note fragment in doc, in document order, and returns
// the records not already present in idx. A failure on one fragment is
// logged and never aborts extraction of its siblings.
func (e *Extractor) Extract(doc *goquery.Document, idx *session.Index) []models.NoteItem {
	var notes []models.NoteItem

	doc.Find(e.selectors.FeedList.Container.Item).Each(func(_ int, s *goquery.Selection) {
		note, err := e.extractNote(s, idx)
		if err != nil {
			slog.Error("Failed to extract note fragment", "error", err)
			return
		}
		if note != nil {
			notes = append(notes, *note)
		}
	})

	return notes
}

// extractNote processes a single note fragment. A nil, nil return means the
// fragment was skipped (hidden, no canonical link, or already captured).
func (e *Extractor) extractNote(s *goquery.Selection, idx *session.Index) (note *models.NoteItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			note = nil
			err = fmt.Errorf("panic while extracting note fragment: %v", r)
		}
	}()

	if isHidden(s) {
		return nil, nil
	}

	elements := e.selectors.FeedList.Elements

	link := s.Find(elements.NoteLink).First()
	href, hasHref := link.Attr("href")
	if !hasHref || strings.TrimSpace(href) == "" {
		// Not an error: placeholder cards carry no canonical link.
		return nil, nil
	}

	fullURL := util.ResolveLink(e.baseURL, href)
	key := util.ContentKey(fullURL)
	if key == "" {
		return nil, nil
	}

	id := util.NoteID(key)
	if idx.Seen(id) {
		return nil, nil
	}

	item := models.NoteItem{
		ID:        id,
		URL:       fullURL,
		Title:     extractText(s, elements.Title),
		Likes:     util.ParseLikeCount(extractText(s, elements.LikeCount)),
		Cover:     extractAttr(s, elements.CoverImage, "src"),
		Timestamp: time.Now().Unix(),
	}

	author := s.Find(elements.AuthorLink).First()
	if authorHref, ok := author.Attr("href"); ok {
		item.AuthorLink = util.ResolveLink(e.baseURL, authorHref)
		item.Author = strings.TrimSpace(author.Find(elements.AuthorName).First().Text())
	}

	s.Find(elements.Images).Each(func(_ int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			item.Images = append(item.Images, src)
		}
	})

	if err := e.validate.ValidateStruct(item); err != nil {
		return nil, fmt.Errorf("note %s failed validation: %w", id, err)
	}

	// Claim the id atomically: when captures overlap, only the goroutine
	// that wins the Add emits the record.
	if !idx.Add(id) {
		return nil, nil
	}
	return &item, nil
}

// isHidden reports whether the fragment carries inline hidden styling.
// Such cards are rendered off-screen placeholders and never extracted.
func isHidden(s *goquery.Selection) bool {
	style, _ := s.Attr("style")
	return strings.Contains(style, "display: none") || strings.Contains(style, "visibility: hidden")
}

func extractText(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(s.Find(selector).First().Text())
}

func extractAttr(s *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	v, _ := s.Find(selector).First().Attr(attr)
	return v
}
