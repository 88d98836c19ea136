package http

import (
	"html/template"
	"io/fs"
	"path"
)

// ViewEngine renders html/template files from a file system.
type ViewEngine struct {
	fsys fs.FS
	ext  string
}

// NewViewEngine creates a ViewEngine.
// ext is the file extension appended to view names (e.g. ".html").
func NewViewEngine(fsys fs.FS, ext string) *ViewEngine {
	return &ViewEngine{fsys: fsys, ext: ext}
}

// Render executes the named view into res and marks it as HTML.
//
//	engine.Render(res, "micro/random", map[string]any{"number": 4})
func (ve *ViewEngine) Render(res *Response, name string, data any) error {
	tmpl, err := template.ParseFS(ve.fsys, name+ve.ext)
	if err != nil {
		return err
	}
	res.SetHeader("Content-Type", "text/html; charset=UTF-8")
	return tmpl.Execute(res, data)
}

// RenderWithLayout renders a view inside a base layout. The layout is the
// template that gets executed; the view supplies the blocks it defines.
func (ve *ViewEngine) RenderWithLayout(res *Response, layout, name string, data any) error {
	layoutPath := layout + ve.ext
	tmpl, err := template.ParseFS(ve.fsys, layoutPath, name+ve.ext)
	if err != nil {
		return err
	}
	res.SetHeader("Content-Type", "text/html; charset=UTF-8")
	return tmpl.ExecuteTemplate(res, path.Base(layoutPath), data)
}
