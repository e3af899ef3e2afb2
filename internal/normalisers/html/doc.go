// Package html provides a Normaliser for HTML documents such as
// scraped librairie article pages. It extracts readable text content,
// stripping tags, scripts and styles and decoding entities so the
// result can be chunked and indexed.
package html
