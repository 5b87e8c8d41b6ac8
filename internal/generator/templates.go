package generator

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/goliatone/go-lexicon/pkg/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewTemplateRenderer loads the embedded page templates. When overrideDir is
// set, templates found there redefine embedded ones by name, so a site can
// restyle individual pages without forking the whole set.
func NewTemplateRenderer(overrideDir string) (interfaces.TemplateRenderer, error) {
	tmpl, err := template.New("lexicon").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("generator: parse embedded templates: %w", err)
	}
	if overrideDir != "" {
		pattern := filepath.Join(overrideDir, "*.html")
		matches, globErr := filepath.Glob(pattern)
		if globErr != nil {
			return nil, fmt.Errorf("generator: scan template overrides: %w", globErr)
		}
		if len(matches) > 0 {
			if tmpl, err = tmpl.ParseGlob(pattern); err != nil {
				return nil, fmt.Errorf("generator: parse template overrides: %w", err)
			}
		}
	}
	return &htmlRenderer{templates: tmpl}, nil
}

type htmlRenderer struct {
	templates *template.Template
}

func (r *htmlRenderer) Render(name string, data any, out io.Writer) error {
	return r.templates.ExecuteTemplate(out, name, data)
}
