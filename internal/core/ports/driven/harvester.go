package driven

import (
	"context"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// FeedClient fetches articles from a publication RSS feed.
type FeedClient interface {
	// Fetch retrieves and parses the feed at the given URL.
	// Returned articles carry Title, URL, Summary and Published.
	Fetch(ctx context.Context, feedURL string) ([]domain.Article, error)
}

// PageScanner detects PDF attachments on a publication page.
type PageScanner interface {
	// FindPDFLinks fetches the page and returns absolute PDF URLs.
	FindPDFLinks(ctx context.Context, pageURL string) ([]string, error)
}

// PDFDownload describes a completed PDF download.
type PDFDownload struct {
	// Filename is the name of the stored file within the target dir.
	Filename string

	// Size is the content size in bytes.
	Size int64

	// SHA256 is the hex digest of the content.
	SHA256 string
}

// PDFDownloader fetches and validates publication PDFs.
type PDFDownloader interface {
	// Download fetches the PDF at url into dir. Content that is not a
	// valid PDF returns ErrInvalidPDF.
	Download(ctx context.Context, url, dir string) (*PDFDownload, error)
}
