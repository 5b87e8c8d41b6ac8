package interfaces

import "io"

// TemplateRenderer renders a named page template with the supplied data into
// out. The generator ships an html/template backed implementation; hosts can
// swap in another engine as long as rendering stays deterministic for
// identical input.
type TemplateRenderer interface {
	Render(name string, data any, out io.Writer) error
}
