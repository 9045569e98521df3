
package rewrite

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const definitionPage = `<html><body>
<article>
  <header>saltar</header>
  <p class="j"><span class="n_acep">1. </span><abbr class="c">intr.</abbr> Levantarse del suelo. <span class="h">Saltó la valla.</span></p>
  <p class="j"><span class="n_acep">2. </span>Lanzarse <span class="i1">en</span> el agua. Véase <a class="a" href="/brincar">brincar</a>.</p>
  <p class="k5">saltar a la vista</p>
</article>
<p class="k6">fuera del artículo</p>
</body></html>`

func TestDropHeader(t *testing.T) {
	tr := DropHeader(tree(t, definitionPage, "article"))
	assert.Equal(t, 0, tr.Entry.Find("header").Length())
}

func TestQuoteParagraphs(t *testing.T) {
	tr := QuoteParagraphs(tree(t, definitionPage, "article"))
	tr.Entry.Find("p").Each(func(_ int, s *goquery.Selection) {
		assert.True(t, strings.HasPrefix(s.Text(), QuoteMarker), s.Text())
	})
	// Paragraphs outside the entry are left alone.
	assert.Equal(t, "fuera del artículo", tr.Doc.Find("p.k6").Text())
}

func TestUppercasePrepositionExample(t *testing.T) {
	tr := Apply(tree(t, definitionPage, "article"), UppercaseText("span", "i1"))
	assert.Equal(t, "EN", tr.Entry.Find("span.i1").Text())
}

func TestRetagRoles(t *testing.T) {
	tr := Apply(tree(t, definitionPage, "article"), Definition()...)

	assert.Equal(t, 0, tr.Entry.Find("span.h, abbr.c, span.n_acep, a.a").Length())
	assert.Equal(t, []string{"intr.", "Saltó la valla."}, texts(tr.Entry.Find("em")))
	assert.Equal(t, []string{"1.", "2."}, texts(tr.Entry.Find("strong")))
	assert.Equal(t, []string{"brincar"}, texts(tr.Entry.Find("b")))
}

func TestHoistTrailingSpace(t *testing.T) {
	tr := Apply(tree(t, definitionPage, "article"), Retag("span", "n_acep", "strong"), HoistTrailingSpace("strong"))

	first := tr.Entry.Find("strong").First()
	assert.Equal(t, "1.", first.Text())
	next := first.Nodes[0].NextSibling
	require.NotNil(t, next)
	assert.Equal(t, " ", next.Data)
	assert.Equal(t, "abbr", next.NextSibling.Data)

	// Elements without trailing space are untouched.
	again := HoistTrailingSpace("strong")(tr)
	assert.Equal(t, " ", again.Entry.Find("strong").First().Nodes[0].NextSibling.Data)
	assert.Equal(t, "abbr", again.Entry.Find("strong").First().Nodes[0].NextSibling.NextSibling.Data)
}

func TestMarkIdiomsSearchesWholeDocument(t *testing.T) {
	tr := MarkIdioms(tree(t, definitionPage, "article"))
	for _, sel := range []string{"p.k5", "p.k6"} {
		prev := tr.Doc.Find(sel).Nodes[0].PrevSibling
		require.NotNil(t, prev, sel)
		assert.Equal(t, QuoteBreak, prev.Data, sel)
	}
}

func TestPassesToleratesMissingEntry(t *testing.T) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>x</p></body></html>`))
	require.NoError(t, err)
	tr := Apply(Tree{Doc: d, Entry: d.Find("article")}, Definition()...)
	assert.False(t, tr.Found())
	assert.Equal(t, "x", d.Find("p").Text())
}

func texts(s *goquery.Selection) []string {
	var out []string
	s.Each(func(_ int, s *goquery.Selection) { out = append(out, s.Text()) })
	return out
}
