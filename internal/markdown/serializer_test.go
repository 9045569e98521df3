
package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(t *testing.T, src, sel string) *goquery.Selection {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return d.Find(sel)
}

func TestConvertInlineFormatting(t *testing.T) {
	s := New()
	md, err := s.Convert(selection(t, `<div id="e"><p>Hola <strong>mundo</strong> y <em>tú</em>, <a href="https://www.rae.es/dpd/saltar">saltar</a>.</p></div>`, "#e"))
	require.NoError(t, err)

	assert.Contains(t, md, "**mundo**")
	assert.Contains(t, md, "*tú*")
	assert.Contains(t, md, "[saltar](https://www.rae.es/dpd/saltar)")
}

func TestConvertKeepsQuoteMarker(t *testing.T) {
	s := New()
	md, err := s.Convert(selection(t, `<div id="e"><p>&gt;uno</p><p>&gt;dos</p></div>`, "#e"))
	require.NoError(t, err)

	assert.Equal(t, ">uno\n>dos", strings.TrimSpace(md))
}

func TestConvertUnescapesText(t *testing.T) {
	s := New()
	md, err := s.Convert(selection(t, `<div id="e"><p>&gt;uno a &lt;b&gt; &amp; c <a href="https://x.es/?a=1&amp;b=2">l</a></p></div>`, "#e"))
	require.NoError(t, err)

	assert.Equal(t, ">uno a <b> & c [l](https://x.es/?a=1&b=2)", strings.TrimSpace(md))
}

func TestConvertKeepsAdjacentEmphasisApart(t *testing.T) {
	s := New()
	md, err := s.Convert(selection(t, `<div id="e"><p>&gt;<strong>1.</strong> <em>intr.</em> Levantarse</p></div>`, "#e"))
	require.NoError(t, err)

	assert.Equal(t, ">**1.** *intr.* Levantarse", strings.TrimSpace(md))
}

func TestConvertIsDeterministic(t *testing.T) {
	s := New()
	sel := selection(t, `<entry><p>Uno <b>dos</b></p><ul><li>tres</li></ul><p>cuatro</p></entry>`, "entry")
	first, err := s.Convert(sel)
	require.NoError(t, err)
	second, err := s.Convert(sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConvertEmptySelection(t *testing.T) {
	md, err := New().Convert(selection(t, `<p>x</p>`, "entry"))
	require.NoError(t, err)
	assert.Empty(t, md)
}

func TestCollapseBlankLines(t *testing.T) {
	cases := map[string]string{
		"a\nb":         "a\nb",
		"a\n\nb":       "a\nb",
		"a\n\n\nb":     "a\nb",
		"a\n\n\n\n\nb": "a\nb",
		"\n\na\n\n":    "\na\n",
		"":             "",
	}
	for in, want := range cases {
		got := CollapseBlankLines(in)
		assert.Equal(t, want, got, "%q", in)
		assert.Equal(t, got, CollapseBlankLines(CollapseBlankLines(got)), "idempotent %q", in)
	}
}
