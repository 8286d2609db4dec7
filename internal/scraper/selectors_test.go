package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSelectorsFromBytes(t *testing.T) {
	data := []byte(`{
		"feed_list": {
			"container": {"item": "div.card"},
			"elements": {"note_link": "a.permalink", "title": "h2"}
		},
		"page": {"loading_indicator": ".spinner"}
	}`)

	sel, err := LoadSelectorsFromBytes(data)
	if err != nil {
		t.Fatalf("LoadSelectorsFromBytes() returned unexpected error: %v", err)
	}
	if sel.FeedList.Container.Item != "div.card" {
		t.Errorf("unexpected container item %q", sel.FeedList.Container.Item)
	}
	if sel.FeedList.Elements.NoteLink != "a.permalink" {
		t.Errorf("unexpected note link selector %q", sel.FeedList.Elements.NoteLink)
	}
	if sel.Page.LoadingIndicator != ".spinner" {
		t.Errorf("unexpected loading indicator %q", sel.Page.LoadingIndicator)
	}
}

func TestLoadSelectorsFromBytes_InvalidJSON(t *testing.T) {
	if _, err := LoadSelectorsFromBytes([]byte(`{not json`)); err == nil {
		t.Error("LoadSelectorsFromBytes() should fail on invalid JSON")
	}
}

func TestLoadSelectors_MissingFile(t *testing.T) {
	if _, err := LoadSelectors(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadSelectors() should fail when the file does not exist")
	}
}

func TestLoadSelectors_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.json")
	content := `{"feed_list": {"container": {"item": "li.note"}}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write selector file: %v", err)
	}

	sel, err := LoadSelectors(path)
	if err != nil {
		t.Fatalf("LoadSelectors() returned unexpected error: %v", err)
	}
	if sel.FeedList.Container.Item != "li.note" {
		t.Errorf("unexpected container item %q", sel.FeedList.Container.Item)
	}
}

func TestDefaultSelectors(t *testing.T) {
	sel := DefaultSelectors()
	if sel.FeedList.Container.Item != "section.note-item" {
		t.Errorf("unexpected default container item %q", sel.FeedList.Container.Item)
	}
	if sel.Page.LoadingIndicator != ".loading-indicator" {
		t.Errorf("unexpected default loading indicator %q", sel.Page.LoadingIndicator)
	}
}

func TestLoadConfig_EmbeddedMatchesDefaults(t *testing.T) {
	sel, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}
	if sel != DefaultSelectors() {
		t.Error("embedded selectors should match the hardcoded defaults")
	}
}
