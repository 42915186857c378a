package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html.tmpl").Funcs(template.FuncMap{
	"offset": func() int { return barOffset },
}).ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// Render writes the page as a standalone HTML document.
func Render(w io.Writer, p *Page) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// WriteFile renders the page to path, creating the parent directory.
func WriteFile(path string, p *Page) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create dashboard dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dashboard file: %w", err)
	}
	if err := Render(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
