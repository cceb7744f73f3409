package embed

import "embed"

// DistFS contains the static page served at /.
//
//go:embed all:dist
var DistFS embed.FS
