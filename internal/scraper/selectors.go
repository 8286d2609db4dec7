package scraper

import (
	"encoding/json"
	"fmt"
	"os"
)

type SelectorConfig struct {
	FeedList FeedSelectors `json:"feed_list"`
	Page     PageSelectors `json:"page"`
}

type FeedSelectors struct {
	Container FeedContainer `json:"container"`
	Elements  FeedElements  `json:"elements"`
}

type FeedContainer struct {
	Item string `json:"item"` // e.g., "section.note-item"
}

type FeedElements struct {
	NoteLink   string `json:"note_link"`
	Title      string `json:"title"`
	AuthorLink string `json:"author_link"`
	AuthorName string `json:"author_name"`
	LikeCount  string `json:"like_count"`
	CoverImage string `json:"cover_image"`
	Images     string `json:"images"`
}

type PageSelectors struct {
	LoadingIndicator string `json:"loading_indicator"`
}

// LoadSelectors loads the selector configuration from the specified JSON file.
func LoadSelectors(path string) (SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to read selector config file: %w", err)
	}

	return LoadSelectorsFromBytes(data)
}

// LoadSelectorsFromBytes parses selector configuration from raw JSON bytes.
// This supports loading from embedded data via go:embed.
func LoadSelectorsFromBytes(data []byte) (SelectorConfig, error) {
	var config SelectorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to parse selector config JSON: %w", err)
	}

	return config, nil
}

// DefaultSelectors returns the fallback configuration if no JSON file is
// loaded. The embedded selectors.json should be preferred; this exists so a
// broken config never leaves the extractor without selectors.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		FeedList: FeedSelectors{
			Container: FeedContainer{
				Item: "section.note-item",
			},
			Elements: FeedElements{
				NoteLink:   `a.cover.mask[href*="xsec_token="]`,
				Title:      ".title",
				AuthorLink: ".author-wrapper .author[href]",
				AuthorName: ".name",
				LikeCount:  ".like-wrapper .count",
				CoverImage: ".cover.mask img",
				Images:     "img[src]",
			},
		},
		Page: PageSelectors{
			LoadingIndicator: ".loading-indicator",
		},
	}
}
