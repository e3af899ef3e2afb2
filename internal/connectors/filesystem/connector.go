// Package filesystem provides a connector that indexes documents from
// a local directory tree.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// ConnectorType identifies this connector in source configuration.
const ConnectorType = "filesystem"

// Buffer size for the document and change channels. Keeps the walker
// ahead of slow consumers without unbounded memory use.
const channelBuffer = 16

// fallbackMIMETypes covers extensions the platform mime database does
// not register consistently.
var fallbackMIMETypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".go":       "text/x-go",
	".py":       "text/x-python",
	".rs":       "text/x-rust",
	".ts":       "text/typescript",
	".tsx":      "text/typescript-jsx",
	".jsx":      "text/javascript-jsx",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
	".sh":       "text/x-shellscript",
	".bash":     "text/x-shellscript",
	".sql":      "text/x-sql",
	".txt":      "text/plain",
}

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector syncs documents from a directory on the local filesystem.
type Connector struct {
	sourceID string
	rootPath string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a filesystem connector rooted at rootPath.
// The path is validated lazily, on first sync or Validate call.
func New(sourceID, rootPath string) *Connector {
	return &Connector{
		sourceID: sourceID,
		rootPath: rootPath,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// SourceID returns the configured source ID.
func (c *Connector) SourceID() string {
	return c.sourceID
}

// Capabilities returns what the filesystem connector supports.
func (c *Connector) Capabilities() driven.ConnectorCapabilities {
	return driven.ConnectorCapabilities{
		SupportsIncremental:  true,
		SupportsWatch:        true,
		SupportsBinary:       false,
		SupportsHierarchy:    true,
		SupportsCursorReturn: true,
	}
}

// Validate checks that the root path exists and is a readable directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.checkRoot()
}

// checkRoot verifies the root path is an existing directory.
func (c *Connector) checkRoot() error {
	info, err := os.Stat(c.rootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.rootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", c.rootPath)
	}
	return nil
}

// FullSync walks the directory tree and streams every visible file.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument, channelBuffer)
	errs := make(chan error, 1)

	go func() {
		defer close(docs)
		defer close(errs)

		if err := c.checkRoot(); err != nil {
			errs <- err
			return
		}

		err := c.walk(ctx, time.Time{}, func(doc domain.RawDocument) bool {
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

// IncrementalSync streams files modified at or after the cursor time.
// The cursor is the UnixNano timestamp of the previous sync; files
// touched exactly at the boundary are included so nothing is missed.
func (c *Connector) IncrementalSync(
	ctx context.Context,
	state domain.SyncState,
) (<-chan domain.RawDocumentChange, <-chan error) {
	changes := make(chan domain.RawDocumentChange, channelBuffer)
	errs := make(chan error, 2)

	go func() {
		defer close(changes)
		defer close(errs)

		var since time.Time
		if state.Cursor != "" {
			nanos, err := strconv.ParseInt(state.Cursor, 10, 64)
			if err != nil {
				errs <- fmt.Errorf("invalid cursor format %q: %w", state.Cursor, err)
				return
			}
			since = time.Unix(0, nanos)
		}

		if err := c.checkRoot(); err != nil {
			errs <- err
			return
		}

		syncStart := time.Now()
		err := c.walk(ctx, since, func(doc domain.RawDocument) bool {
			change := domain.RawDocumentChange{
				Type:     domain.ChangeUpdated,
				Document: doc,
			}
			if since.IsZero() {
				change.Type = domain.ChangeCreated
			}
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
			errs <- &driven.SyncComplete{NewCursor: strconv.FormatInt(syncStart.UnixNano(), 10)}
		}
	}()

	return changes, errs
}

// walk visits every visible file under the root, calling emit for each
// file modified at or after since. A zero since matches all files.
// emit returns false to stop the walk.
func (c *Connector) walk(ctx context.Context, since time.Time, emit func(domain.RawDocument) bool) error {
	stopped := false
	err := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isHidden(relOrSelf(c.rootPath, path)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // file vanished mid-walk
		}
		if !since.IsZero() && info.ModTime().Before(since) {
			return nil
		}

		doc, err := c.readDocument(path)
		if err != nil {
			return nil // unreadable files are skipped, not fatal
		}
		if !emit(*doc) {
			stopped = true
			return filepath.SkipAll
		}
		return nil
	})
	if stopped {
		return nil
	}
	return err
}

// readDocument loads a file into a RawDocument.
func (c *Connector) readDocument(path string) (*domain.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	doc := domain.RawDocument{
		SourceID: c.sourceID,
		URI:      path,
		MIMEType: detectMIMEType(path),
		Content:  content,
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"extension": strings.TrimPrefix(filepath.Ext(path), "."),
			"size":      info.Size(),
			"modified":  info.ModTime(),
		},
	}

	parent := filepath.Dir(path)
	if parent != filepath.Clean(c.rootPath) {
		doc.ParentURI = &parent
	}
	return &doc, nil
}

// Watch streams file change events until the context is cancelled.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("connector is closed")
	}
	if err := c.checkRoot(); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the whole tree; fsnotify is not recursive by itself.
	walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isHidden(relOrSelf(c.rootPath, path)) {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if walkErr != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch setup: %w", walkErr)
	}

	c.watcher = watcher
	changes := make(chan domain.RawDocumentChange, channelBuffer)

	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories need to be added to the watch set.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if change := c.handleFsEvent(event); change != nil {
					select {
					case changes <- *change:
					case <-ctx.Done():
						return
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watcher errors are transient; keep watching.
			}
		}
	}()

	return changes, nil
}

// handleFsEvent converts an fsnotify event into a document change.
// Returns nil for events that should be ignored (directories, hidden
// files, chmod-only events).
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	if isHidden(event.Name) {
		return nil
	}

	switch {
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		return &domain.RawDocumentChange{
			Type: domain.ChangeDeleted,
			Document: domain.RawDocument{
				SourceID: c.sourceID,
				URI:      event.Name,
			},
		}
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
		doc, err := c.readDocument(event.Name)
		if err != nil {
			return nil
		}
		changeType := domain.ChangeUpdated
		if event.Op.Has(fsnotify.Create) {
			changeType = domain.ChangeCreated
		}
		return &domain.RawDocumentChange{Type: changeType, Document: *doc}
	default:
		return nil
	}
}

// Close releases the watcher, if any. Safe to call multiple times.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

// detectMIMEType resolves a MIME type from the file extension.
// Files without an extension are treated as plain text; unknown
// extensions fall back to application/octet-stream.
func detectMIMEType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "text/plain"
	}
	if mimeType, ok := fallbackMIMETypes[ext]; ok {
		return mimeType
	}
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		if idx := strings.Index(mimeType, ";"); idx >= 0 {
			mimeType = strings.TrimSpace(mimeType[:idx])
		}
		return mimeType
	}
	return "application/octet-stream"
}

// isHidden reports whether any element of the path starts with a dot.
// The relative elements "." and ".." do not count as hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// relOrSelf returns path relative to root, or path itself when it
// cannot be made relative. Keeps hidden-file checks scoped to the
// tree being walked rather than absolute path components.
func relOrSelf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
