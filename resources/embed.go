// Package resources embeds the application's templates.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed views
var files embed.FS

// Views is the views directory, rooted so "micro/random.html" resolves.
var Views = mustSub(files, "views")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
