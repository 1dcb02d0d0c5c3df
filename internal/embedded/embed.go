// Package embedded carries the data compiled into the binary: the bundled
// provider list and the entry fixtures served by the in-memory collections.
package embedded

import (
	"embed"
	"io/fs"
)

// FS embeds the bundled provider list and the entry fixtures at build time.
//
//go:embed data/providers.json data/fixtures/*.json
var FS embed.FS

// ProvidersFile is the path of the bundled provider list inside FS.
const ProvidersFile = "data/providers.json"

// Providers returns the bundled provider list document.
func Providers() ([]byte, error) {
	return FS.ReadFile(ProvidersFile)
}

// Fixtures returns the entry fixtures, one <type>.json per resource type.
func Fixtures() fs.FS {
	sub, err := fs.Sub(FS, "data/fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}
