// Package directory holds the immutable, ordered snapshot of portal links.
package directory

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

// ErrDuplicateID is returned by New when two links share an id.
var ErrDuplicateID = errors.New("duplicate link id")

// Directory is a read-only snapshot of links in authored order.
// It is safe for concurrent use because nothing mutates it after New.
type Directory struct {
	links      []domain.Link
	byID       map[string]int
	categories []string
	version    string
}

// New copies links into a new snapshot. An empty list is a valid directory.
func New(links []domain.Link) (*Directory, error) {
	d := &Directory{
		links: make([]domain.Link, 0, len(links)),
		byID:  make(map[string]int, len(links)),
	}

	for _, l := range links {
		if _, ok := d.byID[l.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, l.ID)
		}
		l.Keywords = append([]string(nil), l.Keywords...)
		d.byID[l.ID] = len(d.links)
		d.links = append(d.links, l)
	}

	d.categories = domain.Categories(d.links)
	d.version = digest(d.links)
	return d, nil
}

// All returns the full directory in authored order.
// The result is a copy; callers may modify it freely.
func (d *Directory) All() []domain.Link {
	out := make([]domain.Link, len(d.links))
	for i, l := range d.links {
		l.Keywords = append([]string(nil), l.Keywords...)
		out[i] = l
	}
	return out
}

// Categories returns "All" followed by the sorted distinct categories.
func (d *Directory) Categories() []string {
	return append([]string(nil), d.categories...)
}

// Get looks up a link by id.
func (d *Directory) Get(id string) (domain.Link, bool) {
	i, ok := d.byID[id]
	if !ok {
		return domain.Link{}, false
	}
	l := d.links[i]
	l.Keywords = append([]string(nil), l.Keywords...)
	return l, true
}

// Len returns the number of links.
func (d *Directory) Len() int {
	return len(d.links)
}

// Version is a content digest: equal directories have equal versions.
func (d *Directory) Version() string {
	return d.version
}

// Filter runs the query engine over a copy of the snapshot.
func (d *Directory) Filter(query, category string) []domain.Link {
	return domain.Filter(d.All(), query, category)
}

// digest hashes every field length-prefixed so that field boundaries
// cannot collide.
func digest(links []domain.Link) string {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(strconv.Itoa(len(s)))
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(s)
	}
	for _, l := range links {
		write(l.ID)
		write(l.Title)
		write(l.URL)
		write(l.Category)
		write(l.Description)
		write(strconv.Itoa(len(l.Keywords)))
		for _, kw := range l.Keywords {
			write(kw)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
