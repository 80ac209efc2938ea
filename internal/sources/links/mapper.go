package links

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/linkhub/internal/domain"
)

// ErrNoLinks is returned when a directory file yields no valid link.
var ErrNoLinks = errors.New("no valid links found in directory file")

// Mapper converts a parsed directory file to domain links
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapLinks converts cfg to links in authored order. Entries failing
// validation are left out and reported in skipped.
func (m *Mapper) MapLinks(cfg Config) (links []domain.Link, skipped []error, err error) {
	switch {
	case cfg.Native != nil:
		links, skipped = m.mapNative(cfg.Native)
	case cfg.Homepage != nil:
		links, skipped = m.mapHomepage(cfg.Homepage)
	}

	if len(links) == 0 {
		return nil, skipped, ErrNoLinks
	}
	return links, skipped, nil
}

func (m *Mapper) mapNative(file *File) ([]domain.Link, []error) {
	links := make([]domain.Link, 0, len(file.Links))
	var skipped []error

	for i, e := range file.Links {
		link := domain.Link{
			ID:          strings.TrimSpace(e.ID),
			Title:       strings.TrimSpace(e.Title),
			URL:         strings.TrimSpace(e.URL),
			Category:    e.Category,
			Description: e.Description,
			Keywords:    e.Keywords,
		}
		if link.ID == "" {
			link.ID = generateLinkID(link.URL)
		}
		if err := link.Validate(); err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		links = append(links, link)
	}
	return links, skipped
}

func (m *Mapper) mapHomepage(config ServicesConfig) ([]domain.Link, []error) {
	var links []domain.Link
	var skipped []error

	// Iterate through groups
	for _, groupMap := range config {
		for _, groupName := range sortedKeys(groupMap) {
			for _, serviceMap := range groupMap[groupName] {
				for _, serviceName := range sortedKeys(serviceMap) {
					props := serviceMap[serviceName]

					// Skip services without href
					if props.Href == "" {
						continue
					}

					link := domain.Link{
						ID:          generateLinkID(props.Href),
						Title:       serviceName,
						URL:         props.Href,
						Category:    groupName,
						Description: props.Description,
					}
					if err := link.Validate(); err != nil {
						skipped = append(skipped, fmt.Errorf("%s/%s: %w", groupName, serviceName, err))
						continue
					}
					links = append(links, link)
				}
			}
		}
	}
	return links, skipped
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// generateLinkID creates a stable ID from a URL using SHA-256 hash
// This ensures that the same URL always produces the same ID,
// even if the title changes
func generateLinkID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
