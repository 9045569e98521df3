
// Package markdown serializes rewritten entries into note text.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Serializer converts a selection to Markdown. The zero value is not usable; call New.
type Serializer struct {
	conv *converter.Converter
}

func New() *Serializer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithEmDelimiter("*"),
				commonmark.WithStrongDelimiter("**"),
			),
		),
		// quote markers are inserted as text and must not be escaped
		converter.WithEscapeMode(converter.EscapeModeDisabled),
	)
	return &Serializer{conv: conv}
}

var blankRunRe = regexp.MustCompile(`\n{2,}`)

// CollapseBlankLines replaces every run of consecutive newlines with a
// single one. It is idempotent.
func CollapseBlankLines(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n")
}

// Convert renders every node of sel and returns the collapsed Markdown.
// With escaping disabled the converter keeps text entity-encoded, so the
// result is unescaped before collapsing.
func (s *Serializer) Convert(sel *goquery.Selection) (string, error) {
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering entry: %w", err)
		}
	}
	md, err := s.conv.ConvertString(buf.String())
	if err != nil {
		return "", fmt.Errorf("converting entry to markdown: %w", err)
	}
	return CollapseBlankLines(html.UnescapeString(md)), nil
}
