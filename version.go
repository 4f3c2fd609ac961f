package lectern

import _ "embed"

// Version is the release of the library and the lectern CLI.
//
//go:embed VERSION
var Version string
