package lipbalm

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to the style applied to their content
type StyleMap map[string]lipgloss.Style

// NoFormatTag content is only emitted when colors are off
const NoFormatTag = "no-format"

const rootTag = "lipbalm-root"

var (
	rendererMu      sync.RWMutex
	defaultRenderer = lipgloss.DefaultRenderer()
)

// SetDefaultRenderer sets the renderer whose color profile decides whether
// styles are applied
func SetDefaultRenderer(r *lipgloss.Renderer) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	defaultRenderer = r
}

func colorEnabled() bool {
	rendererMu.RLock()
	defer rendererMu.RUnlock()
	return defaultRenderer.ColorProfile() != termenv.Ascii
}

// Render executes tmpl as a text/template with data, then expands tags
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("lipbalm").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces every <name>...</name> with its content rendered in
// styles[name]. Unknown tags keep their content unstyled. Input that is
// not well formed is returned as is.
func ExpandTags(input string, styles StyleMap) (string, error) {
	if input == "" {
		return "", nil
	}

	root, ok := parse(input)
	if !ok {
		return input, nil
	}

	var b strings.Builder
	expand(&b, root, styles, colorEnabled())
	return b.String(), nil
}

// StripTags returns the text content of input with all tags removed,
// <no-format> content included
func StripTags(input string) string {
	if input == "" {
		return ""
	}

	root, ok := parse(input)
	if !ok {
		return input
	}

	var b strings.Builder
	strip(&b, root)
	return b.String()
}

// Escape makes s safe to embed as text between tags
func Escape(s string) string {
	return escaper.Replace(s)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func parse(input string) (*etree.Element, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + rootTag + ">" + input + "</" + rootTag + ">"); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil {
		return nil, false
	}
	return root, true
}

func expand(b *strings.Builder, el *etree.Element, styles StyleMap, color bool) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == NoFormatTag {
				if !color {
					strip(b, t)
				}
				continue
			}

			var inner strings.Builder
			expand(&inner, t, styles, color)

			style, known := styles[t.Tag]
			if color && known {
				b.WriteString(style.Render(inner.String()))
			} else {
				b.WriteString(inner.String())
			}
		}
	}
}

func strip(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			strip(b, t)
		}
	}
}
