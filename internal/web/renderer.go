package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates
var templateFiles embed.FS

// Renderer renders the console pages with pongo2.
type Renderer struct {
	set *pongo2.TemplateSet
}

// NewRenderer loads the templates embedded in the binary. With debug set,
// templates are re-parsed on every render.
func NewRenderer(appName string, debug bool) (*Renderer, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	loader, err := pongo2.NewHttpFileSystemLoader(http.FS(sub), "")
	if err != nil {
		return nil, fmt.Errorf("template loader: %w", err)
	}
	set := pongo2.NewSet("console", loader)
	set.Debug = debug
	set.Globals["app_name"] = appName
	return &Renderer{set: set}, nil
}

// Execute renders the named template into a byte slice.
func (r *Renderer) Execute(name string, data pongo2.Context) ([]byte, error) {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render writes the named template as the HTML response.
func (r *Renderer) Render(c *fiber.Ctx, status int, name string, data pongo2.Context) error {
	body, err := r.Execute(name, data)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}
