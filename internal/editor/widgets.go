package editor

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// htmlWidget stores markup as the author produced it.
type htmlWidget struct {
	value    string
	onChange func(string)
}

func newHTMLWidget(Options) Widget { return &htmlWidget{} }

func (w *htmlWidget) Value() string            { return w.value }
func (w *htmlWidget) SetValue(v string)        { w.value = v }
func (w *htmlWidget) OnChange(fn func(string)) { w.onChange = fn }
func (w *htmlWidget) Destroy()                 { w.onChange = nil; w.value = "" }

func (w *htmlWidget) Type(v string) {
	w.value = v
	if w.onChange != nil {
		w.onChange(v)
	}
}

var md = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe()))

// markdownWidget lets the author write Markdown and yields HTML. Raw HTML in
// the source passes through so existing notes stay editable.
type markdownWidget struct {
	src      string
	rendered string
	onChange func(string)
}

func newMarkdownWidget(Options) Widget { return &markdownWidget{} }

func (w *markdownWidget) Value() string            { return w.rendered }
func (w *markdownWidget) Source() string           { return w.src }
func (w *markdownWidget) OnChange(fn func(string)) { w.onChange = fn }

func (w *markdownWidget) SetValue(v string) {
	w.src = v
	w.rendered = render(v)
}

func (w *markdownWidget) Type(v string) {
	w.SetValue(v)
	if w.onChange != nil {
		w.onChange(w.rendered)
	}
}

func (w *markdownWidget) Destroy() {
	w.onChange = nil
	w.src, w.rendered = "", ""
}

func render(src string) string {
	var b bytes.Buffer
	if err := md.Convert([]byte(src), &b); err != nil {
		return src
	}
	return b.String()
}
