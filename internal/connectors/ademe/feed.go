package ademe

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure FeedClient implements the interface.
var _ driven.FeedClient = (*FeedClient)(nil)

// FeedClient fetches and parses the librairie RSS 2.0 feeds.
type FeedClient struct {
	client *Client
}

// NewFeedClient creates a feed client using the shared ADEME client.
func NewFeedClient(client *Client) *FeedClient {
	return &FeedClient{client: client}
}

// rssDocument mirrors the RSS 2.0 structure the librairie feeds use.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetch retrieves and parses the feed at the given URL. Items without
// a link are dropped; descriptions have their markup stripped.
func (f *FeedClient) Fetch(ctx context.Context, feedURL string) ([]domain.Article, error) {
	body, err := f.client.get(ctx, feedURL, maxPageBytes)
	if err != nil {
		return nil, err
	}

	var doc rssDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	articles := make([]domain.Article, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:     strings.TrimSpace(item.Title),
			URL:       link,
			Summary:   stripTags(item.Description),
			Published: parsePubDate(item.PubDate),
		})
	}
	return articles, nil
}

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// stripTags removes markup and entities from a feed description.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}

// pubDateFormats are tried in order. The librairie feeds use RFC 1123
// with a numeric zone, but be liberal in what we accept.
var pubDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// parsePubDate parses an RSS pubDate. Unparseable dates yield the zero
// time rather than failing the whole feed.
func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, format := range pubDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
