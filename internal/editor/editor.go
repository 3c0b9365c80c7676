// Package editor wraps the rich-text widget behind a narrow adapter so the
// backing implementation can be swapped per deployment.
package editor

import (
	"errors"
	"fmt"
	"html/template"
	"sync"
)

// Widget is the adapter every backing editor implements.
type Widget interface {
	Value() string
	SetValue(v string)
	OnChange(fn func(string))
	Destroy()
}

// Typer is implemented by widgets that can take user input. Unlike SetValue,
// Type notifies the change callback.
type Typer interface {
	Type(v string)
}

// Sourcer is implemented by widgets whose authored text differs from the
// markup they produce.
type Sourcer interface {
	Source() string
}

type ToolbarGroup struct {
	Name    string
	Buttons []string
}

// DefaultToolbar is the fixed toolbar every editor mounts with.
var DefaultToolbar = []ToolbarGroup{
	{Name: "style", Buttons: []string{"style"}},
	{Name: "font", Buttons: []string{"bold", "italic", "underline", "strikethrough", "clear"}},
	{Name: "fontname", Buttons: []string{"fontname"}},
	{Name: "para", Buttons: []string{"ul", "ol", "paragraph"}},
	{Name: "insert", Buttons: []string{"link", "picture", "video", "table"}},
	{Name: "view", Buttons: []string{"fullscreen", "codeview"}},
}

type Options struct {
	Toolbar     []ToolbarGroup
	Placeholder string
	Height      int
	TabSize     int
	Disabled    bool
}

func DefaultOptions() Options {
	return Options{
		Toolbar:     DefaultToolbar,
		Placeholder: "Write your content...",
		Height:      300,
		TabSize:     2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Toolbar == nil {
		o.Toolbar = d.Toolbar
	}
	if o.Placeholder == "" {
		o.Placeholder = d.Placeholder
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.TabSize <= 0 {
		o.TabSize = d.TabSize
	}
	return o
}

var ErrUnknownFormat = errors.New("unknown editor format")

// Factory builds widgets of one format.
type Factory struct {
	Format string
	New    func(Options) Widget
}

func FactoryFor(format string) (Factory, error) {
	switch format {
	case "", FormatHTML:
		return Factory{Format: FormatHTML, New: newHTMLWidget}, nil
	case FormatMarkdown:
		return Factory{Format: FormatMarkdown, New: newMarkdownWidget}, nil
	}
	return Factory{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Editor owns one widget for the lifetime of a page mount. Unmount must run on
// every exit path; it is safe to call more than once.
type Editor struct {
	mu        sync.Mutex
	format    string
	opts      Options
	w         Widget
	destroyed bool
}

// Mount acquires a widget, loads initial into it and bridges its change events
// to onChange.
func Mount(f Factory, opts Options, initial string, onChange func(string)) *Editor {
	opts = opts.withDefaults()
	w := f.New(opts)
	w.SetValue(initial)
	if onChange != nil {
		w.OnChange(onChange)
	}
	return &Editor{format: f.Format, opts: opts, w: w}
}

func (e *Editor) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ""
	}
	return e.w.Value()
}

// Sync pushes an external value into the widget only when it differs from
// what the widget already holds. It reports whether the widget was written.
func (e *Editor) Sync(v string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || source(e.w) == v || e.w.Value() == v {
		return false
	}
	e.w.SetValue(v)
	return true
}

// Input feeds user-authored text through the widget.
func (e *Editor) Input(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.opts.Disabled {
		return
	}
	if t, ok := e.w.(Typer); ok {
		t.Type(v)
		return
	}
	e.w.SetValue(v)
}

func (e *Editor) Unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.w.Destroy()
}

// View is what the page template needs to render the editor.
type View struct {
	Format      string
	Source      string
	Preview     template.HTML
	Toolbar     []ToolbarGroup
	Placeholder string
	Height      int
	TabSize     int
	Disabled    bool
}

func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := View{
		Format:      e.format,
		Toolbar:     e.opts.Toolbar,
		Placeholder: e.opts.Placeholder,
		Height:      e.opts.Height,
		TabSize:     e.opts.TabSize,
		Disabled:    e.opts.Disabled,
	}
	if !e.destroyed {
		v.Source = source(e.w)
		v.Preview = template.HTML(Sanitize(e.w.Value()))
	}
	return v
}

func source(w Widget) string {
	if s, ok := w.(Sourcer); ok {
		return s.Source()
	}
	return w.Value()
}
