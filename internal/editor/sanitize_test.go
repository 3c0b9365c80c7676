package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		keep    []string
		without []string
	}{
		{
			name: "keeps formatting",
			in:   `<p>Hi <b>there</b> <em>you</em></p><ul><li>one</li></ul>`,
			keep: []string{`<p>Hi <b>there</b> <em>you</em></p><ul><li>one</li></ul>`},
		},
		{
			name:    "drops scripts with content and handlers",
			in:      `<p onclick="x()">Hi</p><script>alert(1)</script>`,
			keep:    []string{`<p>Hi</p>`},
			without: []string{"onclick", "alert", "script"},
		},
		{
			name:    "drops javascript urls",
			in:      `<a href="javascript:alert(1)" title="t">x</a>`,
			keep:    []string{"x"},
			without: []string{"javascript"},
		},
		{
			name: "keeps safe urls",
			in:   `<a href="https://example.com/docs">x</a>`,
			keep: []string{`href="https://example.com/docs"`, "noreferrer"},
		},
		{
			name: "new tab links do not leak the opener",
			in:   `<a href="https://example.com" target="_blank">x</a>`,
			keep: []string{`target="_blank"`, "noreferrer"},
		},
		{
			name: "inline images",
			in:   `<img src="data:image/png;base64,iVBORw0KGgo=" alt="a">`,
			keep: []string{`src="data:image/png;base64,iVBORw0KGgo="`, `alt="a"`},
		},
		{
			name:    "unknown tags keep text",
			in:      `1 < 2 & <unknown>ok</unknown>`,
			keep:    []string{"1 &lt; 2 &amp; ok"},
			without: []string{"unknown"},
		},
		{
			name:    "styles dropped",
			in:      `<style>p{}</style><span style="color:red">red</span>`,
			keep:    []string{"red"},
			without: []string{"p{}", "color:"},
		},
		{
			name:    "frames dropped",
			in:      `<iframe src="https://evil.example"></iframe><p>after</p>`,
			keep:    []string{"<p>after</p>"},
			without: []string{"iframe", "evil"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.in)
			for _, k := range tc.keep {
				require.Contains(t, got, k)
			}
			for _, w := range tc.without {
				require.NotContains(t, got, w)
			}
		})
	}
}
