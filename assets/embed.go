package assets

import (
	"embed"
	"io/fs"
)

//go:embed words.txt
var FS embed.FS

// Words opens the embedded default dictionary.
func Words() (fs.File, error) {
	return FS.Open("words.txt")
}
