package publish

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/eventmem/eventmem-go/pkg/store"
)

// defaultSiteTitle is used when the renderer is configured with none.
const defaultSiteTitle = "Upcoming Events"

// defaultTemplate is the built-in page template. A custom template can be
// supplied through the Renderer; it receives the same pageData value.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
</head>
<body>
<h1>{{.SiteTitle}}</h1>
{{- range .Sections}}
<h2>{{.Heading}}</h2>
{{- if .Events}}
<ul>
{{- range .Events}}
<li><strong>{{.Title}}</strong>
<br>{{.Details}}
{{- if .Body}}
<div>{{.Body}}</div>
{{- end}}
</li>
{{- end}}
</ul>
{{- else}}
<p>No events.</p>
{{- end}}
{{- end}}
</body>
</html>
`

// pageData is the value a page template executes against.
type pageData struct {
	SiteTitle string
	Sections  []sectionData
}

type sectionData struct {
	Heading string
	Events  []eventData
}

type eventData struct {
	// Title is the record title (or its body when untitled) rendered
	// from markdown to inline HTML.
	Title template.HTML

	// Details is the "date · time · place" line.
	Details string

	// Body is the record body rendered from markdown, empty for
	// untitled records whose body already serves as the title.
	Body template.HTML
}

// Renderer turns a plan into a single static HTML page.
type Renderer struct {
	siteTitle string
	tmpl      *template.Template
}

// NewRenderer creates a renderer with the given site title and the built-in
// page template. An empty title falls back to the default.
func NewRenderer(siteTitle string) *Renderer {
	r, err := NewRendererWithTemplate(siteTitle, defaultTemplate)
	if err != nil {
		// The built-in template always parses.
		panic(err)
	}
	return r
}

// NewRendererWithTemplate creates a renderer with a custom page template.
func NewRendererWithTemplate(siteTitle, tmpl string) (*Renderer, error) {
	if siteTitle == "" {
		siteTitle = defaultSiteTitle
	}
	parsed, err := template.New("page").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{siteTitle: siteTitle, tmpl: parsed}, nil
}

// Render generates the complete HTML page for a plan.
func (r *Renderer) Render(plan *Plan) (string, error) {
	data := pageData{
		SiteTitle: r.siteTitle,
		Sections: []sectionData{
			{Heading: "This Week"},
			{Heading: "Upcoming"},
		},
	}

	for i, bucket := range [][]*store.Record{plan.ThisWeek, plan.Upcoming} {
		for _, record := range bucket {
			event, err := renderEvent(record)
			if err != nil {
				return "", err
			}
			data.Sections[i].Events = append(data.Sections[i].Events, event)
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute page template: %w", err)
	}
	return buf.String(), nil
}

// renderEvent converts one record into its template value.
func renderEvent(record *store.Record) (eventData, error) {
	titleSource := record.Title
	if titleSource == "" {
		titleSource = record.Body
	}
	title, err := renderInline(titleSource)
	if err != nil {
		return eventData{}, err
	}

	details := []string{store.FormatDate(record.Target)}
	if record.Time != "" {
		details = append(details, record.Time)
	}
	if record.Place != "" {
		details = append(details, record.Place)
	}

	event := eventData{
		Title:   title,
		Details: strings.Join(details, " · "),
	}

	if record.Title != "" && record.Body != "" {
		body, err := renderMarkdown(record.Body)
		if err != nil {
			return eventData{}, err
		}
		event.Body = body
	}
	return event, nil
}

// renderMarkdown converts markdown source to HTML.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// renderInline converts markdown source to HTML and strips the wrapping
// paragraph tag for use inside inline elements.
func renderInline(src string) (template.HTML, error) {
	html, err := renderMarkdown(src)
	if err != nil {
		return "", err
	}
	s := string(html)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") {
		s = s[len("<p>") : len(s)-len("</p>")]
	}
	return template.HTML(s), nil
}
