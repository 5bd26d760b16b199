// Package web embeds the static vitals entry form served at the root path.
package web

import "embed"

//go:embed static
var Assets embed.FS
