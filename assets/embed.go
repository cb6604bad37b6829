// Package assets embeds files shipped inside the binary.
package assets

import (
	_ "embed"
)

// DefaultSettings is the settings file written when none exists or the
// existing one cannot be used.
//
//go:embed settings.yaml
var DefaultSettings []byte
