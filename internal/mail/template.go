package mail

import (
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
)

// Template is a compiled HTML/plain-text pair rendered with one context.
type Template struct {
	HTML *htmltemplate.Template
	Text *texttemplate.Template
}

const defaultHTMLSource = `<html><body>
<h2>{{.subject}}</h2>
<p>{{.body}}</p>
<hr>
<p>{{.platform_name}} &middot; <a href="{{.platform_url}}">{{.platform_url}}</a></p>
<p>Questions? Contact <a href="mailto:{{.support_email}}">{{.support_email}}</a></p>
<p>&copy; {{.current_year}} {{.platform_name}}</p>
</body></html>`

const defaultTextSource = `{{.subject}}

{{.body}}

--
{{.platform_name}} - {{.platform_url}}
Questions? Contact {{.support_email}}
(c) {{.current_year}} {{.platform_name}}`

// Registry caches compiled templates by name. A template "welcome" is
// loaded from <dir>/welcome.html and <dir>/welcome.txt; if either file
// is missing or fails to compile, the built-in default pair is cached
// under that name instead, so a send never fails on template lookup.
type Registry struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Template

	defaultTemplate *Template
}

func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:   dir,
		cache: make(map[string]*Template),
		defaultTemplate: &Template{
			HTML: htmltemplate.Must(htmltemplate.New("default.html").Parse(defaultHTMLSource)),
			Text: texttemplate.Must(texttemplate.New("default.txt").Parse(defaultTextSource)),
		},
	}
}

// Get returns the compiled template pair for name, loading and caching
// it on first use.
func (r *Registry) Get(name string) *Template {
	r.mu.RLock()
	tpl, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return tpl
	}

	tpl = r.load(name)

	r.mu.Lock()
	r.cache[name] = tpl
	r.mu.Unlock()
	return tpl
}

func (r *Registry) load(name string) *Template {
	htmlSrc, errHTML := os.ReadFile(filepath.Join(r.dir, name+".html"))
	textSrc, errText := os.ReadFile(filepath.Join(r.dir, name+".txt"))
	if errHTML != nil || errText != nil {
		logger.Warn("Email template not found, using default", "template", name)
		return r.defaultTemplate
	}

	htmlTpl, err := htmltemplate.New(name + ".html").Parse(string(htmlSrc))
	if err != nil {
		logger.Warn("Failed to parse HTML email template, using default", "template", name, "error", err)
		return r.defaultTemplate
	}
	textTpl, err := texttemplate.New(name + ".txt").Parse(string(textSrc))
	if err != nil {
		logger.Warn("Failed to parse text email template, using default", "template", name, "error", err)
		return r.defaultTemplate
	}
	return &Template{HTML: htmlTpl, Text: textTpl}
}

// Render executes both halves of the pair with the given context.
func (t *Template) Render(ctx map[string]any) (htmlBody, textBody string, err error) {
	var html, text strings.Builder
	if err := t.HTML.Execute(&html, ctx); err != nil {
		return "", "", err
	}
	if err := t.Text.Execute(&text, ctx); err != nil {
		return "", "", err
	}
	return html.String(), text.String(), nil
}
