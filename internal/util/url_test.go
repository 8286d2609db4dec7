package util

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse base URL %q: %v", raw, err)
	}
	return u
}

func TestResolveLink(t *testing.T) {
	base := mustParse(t, "https://www.xiaohongshu.com")

	tests := []struct {
		name string
		href string
		want string
	}{
		{
			name: "Relative path",
			href: "/explore/abc123?xsec_token=X",
			want: "https://www.xiaohongshu.com/explore/abc123?xsec_token=X",
		},
		{
			name: "Already absolute",
			href: "https://www.xiaohongshu.com/explore/def456",
			want: "https://www.xiaohongshu.com/explore/def456",
		},
		{
			name: "Whitespace trimmed",
			href: "  /explore/abc123  ",
			want: "https://www.xiaohongshu.com/explore/abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLink(base, tt.href); got != tt.want {
				t.Errorf("ResolveLink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Query stripped",
			input: "https://www.xiaohongshu.com/explore/abc123?xsec_token=X",
			want:  "abc123",
		},
		{
			name:  "No query",
			input: "https://www.xiaohongshu.com/explore/abc123",
			want:  "abc123",
		},
		{
			name:  "Root path",
			input: "https://www.xiaohongshu.com/",
			want:  "",
		},
		{
			name:  "Empty path",
			input: "https://www.xiaohongshu.com",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentKey(tt.input); got != tt.want {
				t.Errorf("ContentKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoteID_StableUnderQueryVariation(t *testing.T) {
	a := NoteID(ContentKey("https://www.xiaohongshu.com/explore/abc123?xsec_token=AAA"))
	b := NoteID(ContentKey("https://www.xiaohongshu.com/explore/abc123?xsec_token=BBB&src=feed"))
	if a != b {
		t.Errorf("ids differ under query variation: %q vs %q", a, b)
	}
	if len(a) != 8 {
		t.Errorf("expected 8-char id, got %q", a)
	}

	other := NoteID(ContentKey("https://www.xiaohongshu.com/explore/def456"))
	if a == other {
		t.Errorf("distinct content keys produced the same id %q", a)
	}
}
