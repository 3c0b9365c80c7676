package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeWidget struct {
	value    string
	sets     int
	destroys int
	onChange func(string)
}

func (w *fakeWidget) Value() string            { return w.value }
func (w *fakeWidget) SetValue(v string)        { w.value = v; w.sets++ }
func (w *fakeWidget) OnChange(fn func(string)) { w.onChange = fn }
func (w *fakeWidget) Destroy()                 { w.destroys++ }

func fakeFactory(w *fakeWidget, got *Options) Factory {
	return Factory{Format: "fake", New: func(o Options) Widget {
		*got = o
		return w
	}}
}

func TestMount_AppliesDefaults(t *testing.T) {
	w := &fakeWidget{}
	var opts Options
	e := Mount(fakeFactory(w, &opts), Options{}, "<p>Hi</p>", nil)
	defer e.Unmount()

	require.Equal(t, DefaultToolbar, opts.Toolbar)
	require.Equal(t, "Write your content...", opts.Placeholder)
	require.Equal(t, 300, opts.Height)
	require.Equal(t, 2, opts.TabSize)
	require.Equal(t, "<p>Hi</p>", e.Value())
	require.Equal(t, 1, w.sets)
}

func TestSync_SkipsIdenticalValue(t *testing.T) {
	w := &fakeWidget{}
	var opts Options
	e := Mount(fakeFactory(w, &opts), Options{}, "same", nil)

	require.False(t, e.Sync("same"))
	require.Equal(t, 1, w.sets)

	require.True(t, e.Sync("other"))
	require.Equal(t, 2, w.sets)
	require.Equal(t, "other", e.Value())
}

func TestUnmount_Idempotent(t *testing.T) {
	w := &fakeWidget{}
	var opts Options
	e := Mount(fakeFactory(w, &opts), Options{}, "x", nil)

	e.Unmount()
	e.Unmount()
	require.Equal(t, 1, w.destroys)
	require.False(t, e.Sync("y"))
	require.Empty(t, e.Value())
	require.Empty(t, e.View().Source)
}

func TestHTMLWidget_InputNotifies(t *testing.T) {
	f, err := FactoryFor("html")
	require.NoError(t, err)

	var changes []string
	e := Mount(f, Options{}, "", func(v string) { changes = append(changes, v) })
	defer e.Unmount()

	e.Sync("<p>from server</p>")
	require.Empty(t, changes, "external values do not fire onChange")

	e.Input("<p>typed</p>")
	require.Equal(t, []string{"<p>typed</p>"}, changes)
	require.Equal(t, "<p>typed</p>", e.Value())
}

func TestInput_IgnoredWhenDisabled(t *testing.T) {
	f, _ := FactoryFor("html")
	e := Mount(f, Options{Disabled: true}, "keep", func(string) { t.Fatal("disabled editor fired onChange") })
	defer e.Unmount()

	e.Input("changed")
	require.Equal(t, "keep", e.Value())
}

func TestMarkdownWidget(t *testing.T) {
	f, err := FactoryFor("markdown")
	require.NoError(t, err)

	var last string
	e := Mount(f, Options{}, "", func(v string) { last = v })
	defer e.Unmount()

	e.Input("# Title\n\nHello *you*")
	require.Equal(t, "<h1>Title</h1>\n<p>Hello <em>you</em></p>\n", last)
	require.Equal(t, last, e.Value())

	v := e.View()
	require.Equal(t, "markdown", v.Format)
	require.Equal(t, "# Title\n\nHello *you*", v.Source)
	require.Equal(t, "<h1>Title</h1>\n<p>Hello <em>you</em></p>\n", string(v.Preview))

	require.False(t, e.Sync("# Title\n\nHello *you*"), "same source is not rewritten")
}

func TestFactoryFor_Unknown(t *testing.T) {
	_, err := FactoryFor("wysiwyg")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
