package ademe

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
	"github.com/carbonscore-labs/carbonscore-cli/internal/core/ports/driven"
)

// Ensure Downloader implements the interface.
var _ driven.PDFDownloader = (*Downloader)(nil)

// Content smaller than this is an error page, not a publication.
const minPDFBytes = 1000

var pdfMagic = []byte("%PDF")

// Downloader fetches publication PDFs and validates them before
// writing to disk.
type Downloader struct {
	client *Client
}

// NewDownloader creates a PDF downloader using the shared ADEME client.
func NewDownloader(client *Client) *Downloader {
	return &Downloader{client: client}
}

// Download fetches the PDF at pdfURL into dir. Bodies that do not
// start with the PDF magic bytes or are suspiciously small return
// ErrInvalidPDF and nothing is written.
func (d *Downloader) Download(ctx context.Context, pdfURL, dir string) (*driven.PDFDownload, error) {
	body, err := d.client.get(ctx, pdfURL, maxPDFBytes)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(body, pdfMagic) {
		return nil, fmt.Errorf("%w: %s: missing PDF header", domain.ErrInvalidPDF, pdfURL)
	}
	if len(body) < minPDFBytes {
		return nil, fmt.Errorf("%w: %s: %d bytes is too small", domain.ErrInvalidPDF, pdfURL, len(body))
	}

	filename := filenameFor(pdfURL)
	if err := os.WriteFile(filepath.Join(dir, filename), body, 0o640); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	digest := sha256.Sum256(body)
	return &driven.PDFDownload{
		Filename: filename,
		Size:     int64(len(body)),
		SHA256:   hex.EncodeToString(digest[:]),
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-. ]`)

// filenameFor derives a safe local filename from a PDF URL.
// Attachment-controller URLs have no usable path, so those get a
// timestamped generic name.
func filenameFor(pdfURL string) string {
	parsed, err := url.Parse(pdfURL)
	if err == nil {
		base := path.Base(parsed.Path)
		if strings.HasSuffix(strings.ToLower(base), ".pdf") {
			safe := unsafeFilenameChars.ReplaceAllString(base, "")
			if safe != "" && safe != ".pdf" {
				return safe
			}
		}
	}
	return fmt.Sprintf("document_%d.pdf", time.Now().Unix())
}
