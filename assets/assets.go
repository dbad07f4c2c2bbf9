// Package assets embeds the static files shipped with the binary.
package assets

import "embed"

//go:embed templates seed
var FS embed.FS
