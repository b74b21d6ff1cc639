// Package demo is the example shop served by the sitemode binary.
package demo

import (
	"embed"
	"io/fs"

	"github.com/map-framework/addon-mode-site/pkg/page"
)

//go:embed templates
var templates embed.FS

// Partials are the shared layout templates parsed next to every page.
var Partials = []string{"partials/*.gohtml"}

// Templates returns the embedded template filesystem.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Register adds the shop pages to reg.
func Register(reg *page.Registry, shop *Shop) {
	reg.Register("shop", "checkout", shop.Checkout)
}
