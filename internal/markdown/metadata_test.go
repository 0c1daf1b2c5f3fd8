package markdown

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "strips syntax and keeps link text",
			content: "# Title\n\n[link](http://example.com) more *text*",
			want:    "Title link more text",
		},
		{
			name:    "drops images entirely",
			content: "Intro ![diagram](http://example.com/pic.png) outro",
			want:    "Intro outro",
		},
		{
			name:    "collapses newlines into spaces",
			content: "line one\nline two\n\nline three",
			want:    "line one line two line three",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := excerpt(tc.content, defaultExcerptLimit); got != tc.want {
				t.Fatalf("excerpt = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExcerptTruncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 100)
	got := excerpt(long, defaultExcerptLimit)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long excerpt should end with ellipsis, got %q", got)
	}
	if len([]rune(got)) > defaultExcerptLimit+3 {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}

	exact := strings.Repeat("a", defaultExcerptLimit)
	if got := excerpt(exact, defaultExcerptLimit); strings.HasSuffix(got, "...") {
		t.Fatal("content at the limit should not gain an ellipsis")
	}
}

func TestFirstImage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		content  string
		fallback string
		want     string
	}{
		{
			name:    "markdown image",
			content: "text ![alt](https://cdn.example.com/a.png) more",
			want:    "https://cdn.example.com/a.png",
		},
		{
			name:    "html image",
			content: `text <img src="https://cdn.example.com/b.jpg"> more`,
			want:    "https://cdn.example.com/b.jpg",
		},
		{
			name:    "markdown wins over html",
			content: `<img src="https://cdn.example.com/html.png"> ![m](https://cdn.example.com/md.png)`,
			want:    "https://cdn.example.com/md.png",
		},
		{
			name:    "video urls are skipped",
			content: "![clip](https://cdn.example.com/demo.mp4) ![still](https://cdn.example.com/still.png)",
			want:    "https://cdn.example.com/still.png",
		},
		{
			name:     "fallback when no image",
			content:  "plain text only",
			fallback: "/static/default.png",
			want:     "/static/default.png",
		},
		{
			name:    "no image and no fallback",
			content: "plain text only",
			want:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := firstImage(tc.content, tc.fallback); got != tc.want {
				t.Fatalf("firstImage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsVideoURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/clip.mp4", true},
		{"https://cdn.example.com/clip.webm", true},
		{"https://cdn.example.com/clip.ogg", true},
		{"https://cdn.example.com/clip.mov", true},
		{"https://cdn.example.com/clip.MP4", true},
		{"https://cdn.example.com/clip.mp4?token=abc", true},
		{"https://cdn.example.com/clip.mp4#t=30", true},
		{"https://cdn.example.com/image.png", false},
		{"https://cdn.example.com/clip.mp4.png", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsVideoURL(tc.url); got != tc.want {
			t.Errorf("IsVideoURL(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
