// Package view renders page templates. Handlers address templates by a
// short identity ("index", "post_detail", ...) and pass a Data context;
// tests can swap the Renderer for a Recorder to inspect both.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"yatube/model"
	"yatube/paginator"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists every template identity the controllers may render.
var pages = []string{
	"index",
	"group_list",
	"profile",
	"post_detail",
	"create_post",
	"login",
	"signup",
}

// Data carries everything a page template may need. Pages use only the
// fields their handler sets.
type Data struct {
	Title  string
	Page   paginator.Page[*model.Post]
	Group  *model.Group
	Author *model.User
	Post   *model.Post
	Groups []*model.Group
	Form   *Form
	Next   string
}

// Form carries submitted values and field errors back into a re-rendered
// form.
type Form struct {
	Values map[string]string
	Errors map[string]string
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{
		Values: make(map[string]string),
		Errors: make(map[string]string),
	}
}

// Valid reports whether the form has no field errors.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Renderer turns a template identity and context data into a response body.
type Renderer interface {
	Render(w io.Writer, name string, data *Data) error
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// HTML renders the embedded HTML templates over a shared base layout.
type HTML struct {
	templates map[string]*template.Template
}

// NewHTML parses the embedded templates, one set per page identity.
func NewHTML() (*HTML, error) {
	h := &HTML{templates: make(map[string]*template.Template)}
	for _, name := range pages {
		ts, err := template.New(name).Funcs(functions).ParseFS(templateFS,
			"templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
		h.templates[name] = ts
	}
	return h, nil
}

// Render executes the named template into a buffer first so a template
// error never leaks a half-written page to the client.
func (h *HTML) Render(w io.Writer, name string, data *Data) error {
	ts, ok := h.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	if data == nil {
		data = &Data{}
	}
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("execute template %q: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Recorder is a Renderer that records the last template identity and
// context instead of producing markup. It backs handler tests that assert
// on what would have been rendered.
type Recorder struct {
	Name string
	Data *Data
}

// Render records name and data and writes the template identity as the body.
func (r *Recorder) Render(w io.Writer, name string, data *Data) error {
	r.Name = name
	r.Data = data
	_, err := io.WriteString(w, name)
	return err
}
