package exinc

import _ "embed"

// Version is the release of the exinc module, read from the VERSION file.
//
//go:embed VERSION
var Version string
