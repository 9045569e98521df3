
// Package selector holds the node queries used by the rewrite passes.
// Every query is pure: nodes with a missing or empty attribute simply do
// not match.
package selector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Attr returns the value of key on n, or "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether class is one of the whitespace separated values of n's class attribute.
func HasClass(n *html.Node, class string) bool {
	if class == "" {
		return false
	}
	for _, c := range strings.Fields(Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// HrefWithPrefix selects anchors whose href starts with prefix.
func HrefWithPrefix(root *goquery.Selection, prefix string) *goquery.Selection {
	return root.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href := Attr(s.Nodes[0], "href")
		return href != "" && strings.HasPrefix(href, prefix)
	})
}

// HrefWithoutPrefix selects anchors with a non-empty href that does not start with prefix.
func HrefWithoutPrefix(root *goquery.Selection, prefix string) *goquery.Selection {
	return root.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href := Attr(s.Nodes[0], "href")
		return href != "" && !strings.HasPrefix(href, prefix)
	})
}

// LinksAndMedia selects every anchor with an href and every image with a src, in document order.
func LinksAndMedia(root *goquery.Selection) *goquery.Selection {
	return root.Find("a, img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		n := s.Nodes[0]
		if n.Data == "img" {
			return Attr(n, "src") != ""
		}
		return Attr(n, "href") != ""
	})
}

// ImagesWithSrc selects images whose src is exactly src.
func ImagesWithSrc(root *goquery.Selection, src string) *goquery.Selection {
	return root.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v := Attr(s.Nodes[0], "src")
		return v != "" && v == src
	})
}

// ParagraphsWithClass selects p elements carrying at least one of classes.
func ParagraphsWithClass(root *goquery.Selection, classes ...string) *goquery.Selection {
	return root.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, c := range classes {
			if HasClass(s.Nodes[0], c) {
				return true
			}
		}
		return false
	})
}

// ElementsWithClass selects tag elements carrying class.
func ElementsWithClass(root *goquery.Selection, tag, class string) *goquery.Selection {
	return root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return HasClass(s.Nodes[0], class)
	})
}
