// Package scrub provides a content-cleaning processor for scraped
// pages. It collapses runs of whitespace and drops boilerplate lines
// before chunking.
package scrub

import (
	"context"
	"regexp"
	"strings"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// maxBoilerplateLen is the longest line still considered boilerplate
// when it matches a boilerplate pattern.
const maxBoilerplateLen = 80

var (
	spaceRun = regexp.MustCompile(`[ \t]{2,}`)
	blankRun = regexp.MustCompile(`\n{3,}`)

	// boilerplate matches short navigation and cookie-banner lines
	// common on scraped librairie pages.
	boilerplate = regexp.MustCompile(`(?i)^(accueil|menu|rechercher|se connecter|mon compte|panier|cookies?.*|accepter|refuser|partager|suivez[- ]nous.*|newsletter.*|mentions l[ée]gales|plan du site)$`)
)

// Processor cleans document content in place before chunking.
type Processor struct{}

// New creates a new scrub processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "scrub"
}

// Process rewrites doc.Content with cleaned text. Chunks pass through
// untouched since this processor runs before the chunker.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if doc == nil {
		return chunks, nil
	}
	doc.Content = Clean(doc.Content)
	return chunks, nil
}

// Clean collapses whitespace runs and drops boilerplate lines.
func Clean(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")

	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= maxBoilerplateLen && boilerplate.MatchString(trimmed) {
			continue
		}
		kept = append(kept, spaceRun.ReplaceAllString(trimmed, " "))
	}

	cleaned := strings.Join(kept, "\n")
	cleaned = blankRun.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
