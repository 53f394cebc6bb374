
package parser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"sitesearch/internal/models"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

var whitespaceRe = regexp.MustCompile(`\s+`)

const blockWrapper = "<div class=\"et_pb_text_inner\">\n  %s\n  %s\n</div>"

// Extract decodes the page to UTF-8 and splits it into blocks: every h1-h6
// paired with the first <p> after it in document order. Headings with no
// following paragraph are skipped; one paragraph may serve several headings.
func (p *Parser) Extract(r io.Reader, contentType string) (models.Page, error) {
	doc, err := p.document(r, contentType)
	if err != nil {
		return models.Page{}, err
	}

	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	page := models.Page{
		Title:    clean(doc.Find("title").First().Text()),
		Language: strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
		Blocks:   []models.Block{},
	}

	nodes := doc.Find("h1,h2,h3,h4,h5,h6,p")
	nodes.Each(func(i int, s *goquery.Selection) {
		if goquery.NodeName(s) == "p" {
			return
		}
		para := nextParagraph(nodes, i)
		if para == nil {
			return
		}
		headingHTML, err := goquery.OuterHtml(s)
		if err != nil {
			return
		}
		paraHTML, err := goquery.OuterHtml(para)
		if err != nil {
			return
		}
		heading := clean(s.Text())
		page.Blocks = append(page.Blocks, models.Block{
			Heading: heading,
			Anchor:  strings.TrimSpace(s.AttrOr("id", "")),
			Text:    strings.TrimSpace(heading + " " + clean(para.Text())),
			HTML:    fmt.Sprintf(blockWrapper, headingHTML, paraHTML),
		})
	})

	return page, nil
}

func (p *Parser) document(r io.Reader, contentType string) (*goquery.Document, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		// fallback: if already utf-8, continue
		if !utf8.Valid(data) {
			return nil, err
		}
		utf8data = data
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
}

func nextParagraph(nodes *goquery.Selection, from int) *goquery.Selection {
	for j := from + 1; j < nodes.Length(); j++ {
		if s := nodes.Eq(j); goquery.NodeName(s) == "p" {
			return s
		}
	}
	return nil
}

func clean(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
