
package rewrite

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rae-verb-notes/internal/selector"
)

const (
	// QuoteMarker opens a callout line once serialized.
	QuoteMarker = ">"
	// QuoteBreak separates idiom blocks inside the callout. The serializer
	// drops its trailing spaces, leaving a bare ">" line.
	QuoteBreak = ">  \n"
)

// IdiomClasses mark phrase and compound paragraphs in definition pages.
var IdiomClasses = []string{"k5", "k6"}

// Definition returns the reclassification passes for a definition entry, in order.
func Definition() []Pass {
	return []Pass{
		DropHeader,
		QuoteParagraphs,
		Retag("span", "h", "em"),
		Retag("abbr", "c", "em"),
		UppercaseText("span", "i1"),
		Retag("span", "n_acep", "strong"),
		HoistTrailingSpace("strong"),
		Retag("a", "a", "b"),
		MarkIdioms,
	}
}

// DropHeader removes the entry heading; the note is already keyed by the word.
func DropHeader(t Tree) Tree {
	if t.Found() {
		t.Entry.Find("header").Remove()
	}
	return t
}

// QuoteParagraphs prefixes every paragraph of the entry with QuoteMarker.
func QuoteParagraphs(t Tree) Tree {
	if !t.Found() {
		return t
	}
	t.Entry.Find("p").Each(func(_ int, s *goquery.Selection) {
		s.PrependNodes(textNode(QuoteMarker))
	})
	return t
}

// Retag renames every tag.class element of the entry to role.
func Retag(tag, class, role string) Pass {
	return func(t Tree) Tree {
		if t.Found() {
			rename(selector.ElementsWithClass(t.Entry, tag, class), role)
		}
		return t
	}
}

// UppercaseText upper-cases the text of every tag.class element of the entry.
func UppercaseText(tag, class string) Pass {
	return func(t Tree) Tree {
		if !t.Found() {
			return t
		}
		upper := cases.Upper(language.Spanish)
		selector.ElementsWithClass(t.Entry, tag, class).Each(func(_ int, s *goquery.Selection) {
			s.SetText(upper.String(s.Text()))
		})
		return t
	}
}

// MarkIdioms inserts QuoteBreak before each idiom paragraph of the whole document.
func MarkIdioms(t Tree) Tree {
	selector.ParagraphsWithClass(t.Doc.Selection, IdiomClasses...).Each(func(_ int, s *goquery.Selection) {
		s.BeforeNodes(textNode(QuoteBreak))
	})
	return t
}

// HoistTrailingSpace moves trailing whitespace out of every tag element of
// the entry into a text node right after it. Emphasis that ends in a space
// would otherwise merge with the emphasis that follows.
func HoistTrailingSpace(tag string) Pass {
	return func(t Tree) Tree {
		if !t.Found() {
			return t
		}
		t.Entry.Find(tag).Each(func(_ int, s *goquery.Selection) {
			last := s.Nodes[0].LastChild
			if last == nil || last.Type != html.TextNode {
				return
			}
			trimmed := strings.TrimRightFunc(last.Data, unicode.IsSpace)
			if trimmed == last.Data {
				return
			}
			space := last.Data[len(trimmed):]
			last.Data = trimmed
			s.AfterNodes(textNode(space))
		})
		return t
	}
}
