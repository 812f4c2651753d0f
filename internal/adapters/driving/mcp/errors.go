// Package mcp provides an MCP (Model Context Protocol) server adapter for mcc.
// It lets AI assistants list the operator's Google accounts, browse their
// Google Ads customer hierarchy and create child accounts.
package mcp

import "errors"

// ErrMissingManagerService is returned when the manager service is not provided.
var ErrMissingManagerService = errors.New("mcp: manager service is required")
