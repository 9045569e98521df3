
package selector

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><body>
<a href="/dpd/saltar">in prefix</a>
<a href="#nota">anchor</a>
<a href="">empty</a>
<a>missing</a>
<a href="https://dle.rae.es/saltar">absolute</a>
<img src="/sites/default/files/dpd/img/bolaspa.gif">
<img>
<p class="j">plain</p>
<p class="k5 x">idiom</p>
<p class="k6">compound</p>
<p>no class</p>
<span class="n_acep">1.</span>
</body></html>`

func doc(t *testing.T) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(sampleHTML))
	require.NoError(t, err)
	return d
}

func texts(s *goquery.Selection) []string {
	var out []string
	s.Each(func(_ int, s *goquery.Selection) { out = append(out, s.Text()) })
	return out
}

func TestHrefPrefixQueries(t *testing.T) {
	d := doc(t)
	assert.Equal(t, []string{"in prefix"}, texts(HrefWithPrefix(d.Selection, "/dpd/")))
	assert.Equal(t, []string{"anchor", "absolute"}, texts(HrefWithoutPrefix(d.Selection, "/dpd/")))
}

func TestLinksAndMediaSkipsEmptyAttributes(t *testing.T) {
	d := doc(t)
	sel := LinksAndMedia(d.Selection)
	assert.Equal(t, 4, sel.Length())
	assert.Equal(t, "img", goquery.NodeName(sel.Last()))
}

func TestImagesWithSrc(t *testing.T) {
	d := doc(t)
	assert.Equal(t, 1, ImagesWithSrc(d.Selection, "/sites/default/files/dpd/img/bolaspa.gif").Length())
	assert.Equal(t, 0, ImagesWithSrc(d.Selection, "").Length())
}

func TestParagraphsWithClass(t *testing.T) {
	d := doc(t)
	assert.Equal(t, []string{"idiom", "compound"}, texts(ParagraphsWithClass(d.Selection, "k5", "k6")))
	assert.Equal(t, 0, ParagraphsWithClass(d.Selection).Length())
}

func TestElementsWithClass(t *testing.T) {
	d := doc(t)
	assert.Equal(t, []string{"1."}, texts(ElementsWithClass(d.Selection, "span", "n_acep")))
	assert.Equal(t, 0, ElementsWithClass(d.Selection, "span", "h").Length())
}

func TestAttrOnNilNode(t *testing.T) {
	assert.Equal(t, "", Attr(nil, "href"))
	assert.False(t, HasClass(nil, "k5"))
}
