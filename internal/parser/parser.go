
package parser

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"rae-verb-notes/internal/rewrite"
)

const (
	// UsageEntry is the entry element of usage dictionary pages.
	UsageEntry = "entry"
	// DefinitionEntry is the entry element of definition dictionary pages.
	DefinitionEntry = "article"
)

// ErrEntryNotFound is returned by callers when a page parses but holds no entry.
var ErrEntryNotFound = errors.New("entry not found")

type Parser struct{}

func New() *Parser { return &Parser{} }

// Parse decodes the page to UTF-8, builds the document and selects the
// first element matching entry. A page without one yields a tree whose
// Found reports false.
func (p *Parser) Parse(r io.Reader, contentType, pageURL, entry string) (rewrite.Tree, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return rewrite.Tree{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return rewrite.Tree{}, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return rewrite.Tree{}, err
	}

	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return rewrite.Tree{
		Doc:   doc,
		Entry: doc.Find(entry).First(),
		URL:   pageURL,
	}, nil
}
