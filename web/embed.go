// Package web embeds the HTML templates and static assets so the server
// ships as a single binary.
package web

import "embed"

//go:embed templates static
var FS embed.FS
