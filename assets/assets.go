// Package assets embeds the static files served by the web server.
package assets

import _ "embed"

// Index is the main HTML page.
//
//go:embed index.html
var Index []byte
