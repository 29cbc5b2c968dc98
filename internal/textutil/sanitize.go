package textutil

import "strings"

// fileNameReplacer maps filesystem-hostile characters to safe alternatives.
// Separators and colons become dashes so names built from video IDs and
// language codes stay a single path element.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"\x00", "",
	"\n", " ",
	"\t", " ",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a file name and
// trims surrounding whitespace. Equal inputs always produce the same name.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
