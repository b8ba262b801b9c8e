// Package static embeds the console stylesheet.
package static

import "embed"

// FS exposes console static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
