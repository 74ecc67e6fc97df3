// Package web embeds the browser client bundle.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Bundle returns the client bundle rooted at its index.html.
func Bundle() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// "static" is embedded at compile time
		panic(err)
	}
	return sub
}
