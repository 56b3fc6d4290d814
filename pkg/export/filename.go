package export

import "github.com/gosimple/slug"

// Filename builds an ASCII download name from a human title.
func Filename(title, ext string) string {
	base := slug.Make(title)
	if base == "" {
		base = "export"
	}
	return base + "." + ext
}
