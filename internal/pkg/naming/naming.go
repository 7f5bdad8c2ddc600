package naming

import "strings"

const DefaultTemplate = "{brand}_{product}_{format}.png"

var fileNameSanitizer = strings.NewReplacer(
	"\\", "_",
	"/", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// Render substitutes {brand}, {product} and {format} in the template and
// sanitizes the result for the remote file system.
func Render(template, brand, product, format string) string {
	if template == "" {
		template = DefaultTemplate
	}
	name := strings.NewReplacer(
		"{brand}", brand,
		"{product}", product,
		"{format}", format,
	).Replace(template)
	return Sanitize(name)
}

// Sanitize replaces filesystem-hostile characters with underscores.
func Sanitize(name string) string {
	return fileNameSanitizer.Replace(strings.TrimSpace(name))
}
