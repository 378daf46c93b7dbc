// Package mcp provides an MCP (Model Context Protocol) server adapter for casedocs.
// It lets AI assistants search indexed court cases and question a case document.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrQnAUnavailable is returned by ask_case when no question answering
// service is configured.
var ErrQnAUnavailable = errors.New("mcp: question answering is not configured")
