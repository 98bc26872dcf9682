package doc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/nguyenthenguyen/docx"

	odf "github.com/logicossoftware/go-odf"
)

var docxParagraphExpr = xpath.MustCompile("//*[local-name()='p']")

// viaDocx extracts flat text from an OOXML Word document without the
// office suite. Paragraph elements become lines; runs within a paragraph
// are concatenated. Tables, headers and footers are not visited; this
// is a fallback extractor, not a renderer.
func viaDocx(path string) (string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".docx" {
		return "", errSkip
	}
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", odf.ErrParse, err)
	}
	defer r.Close()

	root, err := xmlquery.Parse(strings.NewReader(r.Editable().GetContent()))
	if err != nil {
		return "", fmt.Errorf("%w: word/document.xml: %v", odf.ErrParse, err)
	}

	var lines []string
	for _, p := range xmlquery.QuerySelectorAll(root, docxParagraphExpr) {
		lines = append(lines, elementText(p))
	}
	return strings.Join(lines, "\n"), nil
}

func elementText(n *xmlquery.Node) string {
	var b strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				b.WriteString(c.Data)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}
