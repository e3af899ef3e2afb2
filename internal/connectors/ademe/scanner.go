package ademe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.PageScanner = (*Scanner)(nil)

// Scanner detects PDF attachments on librairie publication pages.
// The pages embed their attachments in several different ways
// (PrestaShop attachment controller links, script variables, JSON-LD,
// data attributes), so every strategy is tried and the results merged.
type Scanner struct {
	client *Client
}

// NewScanner creates a page scanner using the shared ADEME client.
func NewScanner(client *Client) *Scanner {
	return &Scanner{client: client}
}

var (
	anchorHrefPattern = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*["']([^"']+)["']`)
	scriptPattern     = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script>`)
	jsonLDPattern     = regexp.MustCompile(`(?is)<script[^>]*type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)
	metaContentPat    = regexp.MustCompile(`(?is)<meta\s[^>]*?content\s*=\s*["']([^"']+)["']`)
	iframeSrcPattern  = regexp.MustCompile(`(?is)<iframe\s[^>]*?src\s*=\s*["']([^"']+)["']`)
	// Quote-aware so JSON inside single-quoted attributes survives.
	attrValuePattern = regexp.MustCompile(`(?is)\sdata-[\w-]+\s*=\s*(?:"([^"]+)"|'([^']+)')`)

	// PDF URLs inside script bodies.
	scriptPDFPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)["'](https?://[^"']+?\.pdf[^"']*)["']`),
		regexp.MustCompile(`(?i)(https?://[^\s<>"']+?\.pdf[^\s<>"']*)`),
		regexp.MustCompile(`(?i)pdfUrl[=:]\s*["']([^"']+\.pdf[^"']*)["']`),
		regexp.MustCompile(`(?i)download[^=]*=\s*["']([^"']+?\.pdf[^"']*)["']`),
	}

	// PrestaShop attachment ids in script bodies.
	attachmentIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`id_attachment"\s*:\s*(\d+)`),
		regexp.MustCompile(`id_attachment=\s*(\d+)`),
	}
)

// FindPDFLinks fetches the page and returns the absolute PDF URLs
// found by any strategy, deduplicated and sorted.
func (s *Scanner) FindPDFLinks(ctx context.Context, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	body, err := s.client.get(ctx, pageURL, maxPageBytes)
	if err != nil {
		return nil, err
	}
	page := string(body)

	found := make(map[string]struct{})
	add := func(candidate string) {
		if resolved := resolvePDFURL(base, candidate); resolved != "" {
			found[resolved] = struct{}{}
		}
	}

	s.extractFromAnchors(page, add)
	s.extractFromScripts(page, base, add)
	s.extractFromMeta(page, add)
	s.extractFromIframes(page, add)
	s.extractFromDataAttributes(page, base, add)
	s.extractFromJSONLD(page, add)

	urls := make([]string, 0, len(found))
	for u := range found {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

func (s *Scanner) extractFromAnchors(page string, add func(string)) {
	for _, match := range anchorHrefPattern.FindAllStringSubmatch(page, -1) {
		href := strings.TrimSpace(match[1])
		if isAttachmentLink(href) || isPDFLink(href) {
			add(href)
		}
	}
}

func (s *Scanner) extractFromScripts(page string, base *url.URL, add func(string)) {
	for _, script := range scriptPattern.FindAllStringSubmatch(page, -1) {
		body := script[1]
		for _, pattern := range scriptPDFPatterns {
			for _, match := range pattern.FindAllStringSubmatch(body, -1) {
				add(match[1])
			}
		}
		if strings.Contains(body, "attachments") {
			for _, pattern := range attachmentIDPatterns {
				for _, match := range pattern.FindAllStringSubmatch(body, -1) {
					add(attachmentURL(base, match[1]))
				}
			}
		}
	}
}

func (s *Scanner) extractFromMeta(page string, add func(string)) {
	for _, match := range metaContentPat.FindAllStringSubmatch(page, -1) {
		if strings.Contains(strings.ToLower(match[1]), ".pdf") {
			add(match[1])
		}
	}
}

func (s *Scanner) extractFromIframes(page string, add func(string)) {
	for _, match := range iframeSrcPattern.FindAllStringSubmatch(page, -1) {
		if strings.Contains(strings.ToLower(match[1]), ".pdf") {
			add(match[1])
		}
	}
}

// extractFromDataAttributes handles both plain PDF URLs in data-*
// attributes and embedded JSON attachment lists.
func (s *Scanner) extractFromDataAttributes(page string, base *url.URL, add func(string)) {
	for _, match := range attrValuePattern.FindAllStringSubmatch(page, -1) {
		raw := match[1]
		if raw == "" {
			raw = match[2]
		}
		value := strings.TrimSpace(unescapeAttr(raw))

		if (strings.HasPrefix(value, "http") || strings.HasPrefix(value, "/")) && isPDFLink(value) {
			add(value)
			continue
		}

		if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
			var data struct {
				Attachments []map[string]any `json:"attachments"`
			}
			if err := json.Unmarshal([]byte(value), &data); err != nil {
				continue
			}
			for _, att := range data.Attachments {
				id := att["id_attachment"]
				if id == nil {
					id = att["id"]
				}
				if id != nil {
					add(attachmentURL(base, fmt.Sprintf("%v", id)))
				}
			}
		}
	}
}

// extractFromJSONLD walks structured data blocks recursively and picks
// up any string value containing a PDF reference.
func (s *Scanner) extractFromJSONLD(page string, add func(string)) {
	for _, match := range jsonLDPattern.FindAllStringSubmatch(page, -1) {
		var data any
		if err := json.Unmarshal([]byte(match[1]), &data); err != nil {
			continue
		}
		walkJSONForPDFs(data, add)
	}
}

func walkJSONForPDFs(data any, add func(string)) {
	switch v := data.(type) {
	case map[string]any:
		for _, value := range v {
			walkJSONForPDFs(value, add)
		}
	case []any:
		for _, item := range v {
			walkJSONForPDFs(item, add)
		}
	case string:
		if strings.Contains(strings.ToLower(v), ".pdf") {
			add(v)
		}
	}
}

// attachmentURL builds a PrestaShop attachment download URL.
func attachmentURL(base *url.URL, id string) string {
	ref, err := base.Parse("/index.php?controller=attachment&id_attachment=" + id)
	if err != nil {
		return ""
	}
	return ref.String()
}

// isAttachmentLink reports whether href is a PrestaShop attachment
// controller link.
func isAttachmentLink(href string) bool {
	return strings.Contains(href, "controller=attachment") && strings.Contains(href, "id_attachment=")
}

// isPDFLink reports whether href points at a PDF: attachment links,
// paths ending in .pdf, or queries mentioning .pdf.
func isPDFLink(href string) bool {
	href = strings.TrimSpace(href)
	if isAttachmentLink(href) {
		return true
	}
	if !strings.HasPrefix(href, "http") && !strings.HasPrefix(href, "/") {
		return false
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	if strings.HasSuffix(strings.ToLower(parsed.Path), ".pdf") {
		return true
	}
	return strings.Contains(strings.ToLower(parsed.RawQuery), ".pdf")
}

// resolvePDFURL resolves a candidate against the page URL and returns
// the absolute URL when it still looks like a PDF, empty otherwise.
func resolvePDFURL(base *url.URL, candidate string) string {
	candidate = strings.TrimSpace(unescapeAttr(candidate))
	if candidate == "" {
		return ""
	}
	ref, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if !isPDFLink(resolved.String()) {
		return ""
	}
	return resolved.String()
}

// unescapeAttr undoes the HTML escaping found in attribute values.
func unescapeAttr(s string) string {
	if strings.Contains(s, "&") {
		return strings.NewReplacer("&amp;", "&", "&quot;", `"`, "&#39;", "'").Replace(s)
	}
	return s
}
