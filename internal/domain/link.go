package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// ErrInvalidLink is returned by Validate for a link that cannot be listed.
var ErrInvalidLink = errors.New("invalid link")

// Link represents one government portal entry of the directory.
//
// Links are plain values: a directory snapshot owns its copies and never
// hands out pointers into its storage.
type Link struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is the opaque unique identifier, only used for keying.
	ID string `json:"id" yaml:"id"`

	// Title is the human readable portal name.
	// Example: GST Portal
	Title string `json:"title" yaml:"title"`

	// URL is the absolute destination.
	// Example: https://www.gst.gov.in
	URL string `json:"url" yaml:"url"`

	// ─────────────────────────────
	// Classification & search aids
	// ─────────────────────────────

	// Category is a free-form label. Grouping is exact-string.
	Category string `json:"category" yaml:"category"`

	// Description is an optional one-line summary.
	Description string `json:"description,omitempty" yaml:"description"`

	// Keywords are search aids, only partially shown to visitors.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords"`
}

// Validate checks the authoring invariants of a single link.
func (l Link) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidLink)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("%w %q: empty title", ErrInvalidLink, l.ID)
	}
	u, err := url.Parse(l.URL)
	if err != nil {
		return fmt.Errorf("%w %q: malformed url: %v", ErrInvalidLink, l.ID, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w %q: url must be absolute, got %q", ErrInvalidLink, l.ID, l.URL)
	}
	return nil
}

// Hashtags returns the first n keywords rendered as tags: whitespace removed
// and prefixed with '#'. Keywords left empty after stripping are skipped.
// Example: ["gst verify", "tax return"] -> ["#gstverify", "#taxreturn"]
func Hashtags(keywords []string, n int) []string {
	if n <= 0 || len(keywords) == 0 {
		return []string{}
	}
	if n > len(keywords) {
		n = len(keywords)
	}

	tags := make([]string, 0, n)
	for _, kw := range keywords[:n] {
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, kw)
		if stripped == "" {
			continue
		}
		tags = append(tags, "#"+stripped)
	}
	return tags
}
