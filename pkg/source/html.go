package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xhad/textotest/internal/models"
)

// contentSelectors are tried in order; the first match holds the page body.
var contentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".documentation",
	"#documentation",
}

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, tr, blockquote, dt, dd, figcaption"

var noisePatterns = []string{
	"Cookie Policy",
	"Accept Cookies",
	"Privacy Policy",
	"Terms of Service",
}

// FromHTML extracts the main content of a page. Headings, list items and
// table cells become hints.
func FromHTML(r io.Reader) (models.RawDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.RawDocument{}, fmt.Errorf("failed to parse HTML: %v", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc *goquery.Document) models.RawDocument {
	doc.Find("script, style, noscript, nav, footer, template").Remove()

	var b builder
	mainContent(doc).Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case name == "tr":
			var cells []string
			s.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				if text := clean(cell.Text()); text != "" {
					cells = append(cells, text)
				}
			})
			if len(cells) > 0 {
				b.cells(cells)
			}
		case len(name) == 2 && name[0] == 'h':
			if text := clean(s.Text()); text != "" {
				b.line(text, models.HintHeading)
				b.line("", "")
			}
		case name == "li":
			if text := clean(ownText(s)); text != "" {
				b.line(text, models.HintBullet)
			}
		default:
			// paragraphs inside list items, cells and quotes come out with their parent
			if name == "p" && s.ParentsFiltered("li, td, th, blockquote").Length() > 0 {
				return
			}
			if text := clean(s.Text()); text != "" {
				b.line(text, "")
				b.line("", "")
			}
		}
	})

	raw := models.RawDocument{
		Title: clean(doc.Find("title").First().Text()),
		Text:  b.text.String(),
		Hints: b.hints,
	}
	if strings.TrimSpace(raw.Text) == "" {
		raw.Text = clean(mainContent(doc).Text())
		raw.Hints = nil
	}
	return raw
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			return selected.First()
		}
	}
	return doc.Find("body")
}

// ownText is the element's text without nested lists.
func ownText(s *goquery.Selection) string {
	clone := s.Clone()
	clone.Find("ul, ol").Remove()
	return clone.Text()
}

func clean(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}
	return strings.TrimSpace(content)
}
