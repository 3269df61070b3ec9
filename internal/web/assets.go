package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// Templates holds the HTML templates.
func Templates() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static holds the JS and CSS served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
