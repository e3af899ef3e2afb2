// Package ademe harvests publications from the ADEME librairie.
//
// It provides three driven adapters used by the harvest service (an
// RSS feed client, a page scanner that detects PDF attachments, and a
// validating PDF downloader) plus a Connector implementation that
// streams recent publication pages into the ingestion pipeline.
package ademe
