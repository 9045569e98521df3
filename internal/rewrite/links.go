
package rewrite

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"rae-verb-notes/internal/selector"
)

// ImagePolicy decides what happens to images during link rewriting.
type ImagePolicy string

const (
	// ImageGlyph replaces the decorative marker image with Glyph and
	// makes every other image absolute.
	ImageGlyph ImagePolicy = "glyph"
	// ImageAbsolute makes every image absolute, marker included.
	ImageAbsolute ImagePolicy = "absolute"
)

// RefKind classifies a reference before rewriting.
type RefKind int

const (
	RefRelative RefKind = iota
	RefUnderPrefix
	RefAbsolute
)

const (
	DefaultSiteRoot   = "https://www.rae.es"
	DefaultLinkPrefix = "/dpd/"
	DefaultMarkerSrc  = "/sites/default/files/dpd/img/bolaspa.gif"
	DefaultGlyph      = "❌"
)

// Links rewrites hyperlinks and media references so they resolve outside the site.
type Links struct {
	SiteRoot    string
	LinkPrefix  string
	MediaPrefix string
	MarkerSrc   string
	Glyph       string
	Images      ImagePolicy
}

// DefaultLinks returns the rewriter configured for the usage dictionary.
func DefaultLinks(policy ImagePolicy) Links {
	return Links{
		SiteRoot:    DefaultSiteRoot,
		LinkPrefix:  DefaultLinkPrefix,
		MediaPrefix: "/",
		MarkerSrc:   DefaultMarkerSrc,
		Glyph:       DefaultGlyph,
		Images:      policy,
	}
}

// Classify sorts ref into absolute, under prefix, or relative. Absolute
// wins over prefix so a full URL is never prefixed twice.
func Classify(ref, prefix string) RefKind {
	if strings.HasPrefix(ref, "//") {
		return RefAbsolute
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return RefAbsolute
	}
	if prefix != "" && strings.HasPrefix(ref, prefix) {
		return RefUnderPrefix
	}
	return RefRelative
}

// Resolve returns the rewritten form of ref for a page fetched from pageURL.
func (l Links) Resolve(ref, prefix, pageURL string) string {
	switch Classify(ref, prefix) {
	case RefAbsolute:
		return ref
	case RefUnderPrefix:
		return strings.TrimRight(l.SiteRoot, "/") + ref
	default:
		return pageURL + ref
	}
}

// Pass returns the document wide link rewriting pass.
func (l Links) Pass() Pass {
	return func(t Tree) Tree {
		root := t.Doc.Selection
		if l.Images == ImageGlyph && l.MarkerSrc != "" {
			selector.ImagesWithSrc(root, l.MarkerSrc).Each(func(_ int, s *goquery.Selection) {
				s.ReplaceWithNodes(textNode(l.Glyph))
			})
		}
		// Both anchor sets are taken before any href changes so a node is
		// rewritten at most once.
		inPrefix := selector.HrefWithPrefix(root, l.LinkPrefix)
		outPrefix := selector.HrefWithoutPrefix(root, l.LinkPrefix)
		media := selector.LinksAndMedia(root).Filter("img")

		inPrefix.Each(func(_ int, s *goquery.Selection) {
			s.SetAttr("href", strings.TrimRight(l.SiteRoot, "/")+selector.Attr(s.Nodes[0], "href"))
		})
		outPrefix.Each(func(_ int, s *goquery.Selection) {
			s.SetAttr("href", l.Resolve(selector.Attr(s.Nodes[0], "href"), l.LinkPrefix, t.URL))
		})
		media.Each(func(_ int, s *goquery.Selection) {
			s.SetAttr("src", l.Resolve(selector.Attr(s.Nodes[0], "src"), l.MediaPrefix, t.URL))
		})
		return t
	}
}
