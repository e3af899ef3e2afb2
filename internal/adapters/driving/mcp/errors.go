// Package mcp provides an MCP (Model Context Protocol) server adapter for
// CarbonScore. It lets AI assistants search indexed ADEME publications,
// compute scope 1 assessments, and look up emission factors.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrScoreUnavailable is returned when the score service is not configured.
	ErrScoreUnavailable = errors.New("mcp: score service not configured")

	// ErrAssistantUnavailable is returned when the assistant service is not configured.
	ErrAssistantUnavailable = errors.New("mcp: assistant service not configured")
)
