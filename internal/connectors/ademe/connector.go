package ademe

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// ConnectorType identifies this connector in source configuration.
const ConnectorType = "ademe"

// Config keys accepted by the connector.
const (
	// ConfigThemes is a comma-separated list of theme names to
	// harvest. Empty means all themes.
	ConfigThemes = "themes"

	// ConfigPerTheme is how many recent publications to ingest per
	// theme.
	ConfigPerTheme = "articles_per_theme"
)

// The librairie feeds list publications newest first; the original
// prototype kept the three most recent per theme.
const defaultPerTheme = 3

const channelBuffer = 8

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector streams recent ADEME publication pages into the ingestion
// pipeline as HTML documents.
type Connector struct {
	sourceID string
	themes   []domain.Theme
	perTheme int
	client   *Client
	feeds    driven.FeedClient
}

// NewConnector creates an ADEME connector for the given source.
// Returns ErrConnectorValidation for unknown theme names.
func NewConnector(source domain.Source, client *Client) (*Connector, error) {
	themes, err := themesFromConfig(source.Config)
	if err != nil {
		return nil, err
	}

	perTheme := defaultPerTheme
	if raw := source.Config[ConfigPerTheme]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrConnectorValidation, ConfigPerTheme)
		}
		perTheme = n
	}

	return &Connector{
		sourceID: source.ID,
		themes:   themes,
		perTheme: perTheme,
		client:   client,
		feeds:    NewFeedClient(client),
	}, nil
}

func themesFromConfig(config map[string]string) ([]domain.Theme, error) {
	raw := strings.TrimSpace(config[ConfigThemes])
	if raw == "" {
		return domain.Themes, nil
	}
	var themes []domain.Theme
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		theme, ok := domain.ThemeByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown theme %q", domain.ErrConnectorValidation, name)
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns what the ADEME connector supports.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsIncremental:  true,
		SupportsCursorReturn: true,
		SupportsRateLimiting: true,
	}
}

// Validate fetches the first configured feed as a reachability check.
func (c *Connector) Validate(ctx context.Context) error {
	if len(c.themes) == 0 {
		return fmt.Errorf("%w: no themes configured", domain.ErrConnectorValidation)
	}
	if _, err := c.feeds.Fetch(ctx, c.themes[0].FeedURL); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConnectorValidation, err)
	}
	return nil
}

// FullSync fetches the recent publications of every configured theme
// and streams their pages as HTML documents.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument, channelBuffer)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)
		_, err := c.sync(ctx, nil, func(doc domain.RawDocument) bool {
			select {
			case docs <- doc:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			errs <- err
		}
	}()

	return docs, errs
}

// cursor records, per theme, the publication date of the newest
// article already ingested. Serialised as base64 JSON.
type cursor map[string]time.Time

func decodeCursor(raw string) (cursor, error) {
	if raw == "" {
		return cursor{}, nil
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}
	var cur cursor
	if err := json.Unmarshal(data, &cur); err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}
	return cur, nil
}

func (c cursor) encode() string {
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// IncrementalSync streams publications newer than the cursor and
// finishes with a SyncComplete carrying the updated cursor.
func (c *Connector) IncrementalSync(
	ctx context.Context,
	state domain.SyncState,
) (<-chan domain.RawDocumentChange, <-chan error) {
	changes := make(chan domain.RawDocumentChange, channelBuffer)
	errs := make(chan error, 2)

	go func() {
		defer close(changes)
		defer close(errs)

		cur, err := decodeCursor(state.Cursor)
		if err != nil {
			errs <- err
			return
		}

		newCur, err := c.sync(ctx, cur, func(doc domain.RawDocument) bool {
			change := domain.RawDocumentChange{Type: domain.ChangeCreated, Document: doc}
			select {
			case changes <- change:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			errs <- err
			return
		}
		if ctx.Err() == nil {
			errs <- &driven.SyncComplete{NewCursor: newCur.encode()}
		}
	}()

	return changes, errs
}

// sync walks the configured feeds and emits the page of every article
// newer than the cursor (all articles when cur is nil). Returns the
// advanced cursor. Feed failures abort; page failures skip the one
// article.
func (c *Connector) sync(ctx context.Context, cur cursor, emit func(domain.RawDocument) bool) (cursor, error) {
	newCur := cursor{}
	for theme, last := range cur {
		newCur[theme] = last
	}

	for _, theme := range c.themes {
		if ctx.Err() != nil {
			return newCur, ctx.Err()
		}

		articles, err := c.feeds.Fetch(ctx, theme.FeedURL)
		if err != nil {
			return newCur, fmt.Errorf("theme %s: %w", theme.Name, err)
		}

		// Newest first, capped per theme.
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Published.After(articles[j].Published)
		})
		if len(articles) > c.perTheme {
			articles = articles[:c.perTheme]
		}

		since := cur[theme.Name]
		for _, article := range articles {
			if cur != nil && !article.Published.After(since) {
				continue
			}

			page, err := c.client.get(ctx, article.URL, maxPageBytes)
			if err != nil {
				continue
			}

			doc := domain.RawDocument{
				SourceID: c.sourceID,
				URI:      article.URL,
				MIMEType: "text/html",
				Content:  page,
				Metadata: map[string]any{
					"theme":     theme.Name,
					"title":     article.Title,
					"summary":   article.Summary,
					"published": article.Published,
				},
			}
			if !emit(doc) {
				return newCur, ctx.Err()
			}

			if article.Published.After(newCur[theme.Name]) {
				newCur[theme.Name] = article.Published
			}
		}
	}
	return newCur, nil
}

// Watch is not supported; the feeds are polled by the scheduler.
func (c *Connector) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	return nil, fmt.Errorf("%w: ademe connector does not support watch", domain.ErrNotImplemented)
}

// Close is a no-op; the connector holds no resources.
func (c *Connector) Close() error {
	return nil
}
