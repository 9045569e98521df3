
// Package rewrite turns a fetched dictionary page into markup the
// serializer can render faithfully. Each transformation is a Pass that
// takes ownership of a Tree and returns it once mutated.
package rewrite

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree is a parsed page together with its selected entry.
type Tree struct {
	Doc   *goquery.Document
	Entry *goquery.Selection
	// URL is the address the page was fetched from.
	URL string
}

// Found reports whether an entry was selected.
func (t Tree) Found() bool {
	return t.Entry != nil && t.Entry.Length() > 0
}

// Pass is one bounded set of rewrites.
type Pass func(Tree) Tree

// Apply runs passes in order, threading the tree through each.
func Apply(t Tree, passes ...Pass) Tree {
	for _, p := range passes {
		t = p(t)
	}
	return t
}

func rename(sel *goquery.Selection, tag string) {
	a := atom.Lookup([]byte(tag))
	for _, n := range sel.Nodes {
		n.Data = tag
		n.DataAtom = a
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
