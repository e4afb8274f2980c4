// Package ui holds the HTML templates for the book catalog, embedded into the
// binary so the server has no runtime file dependencies.
package ui

import "embed"

//go:embed "html"
var Files embed.FS
