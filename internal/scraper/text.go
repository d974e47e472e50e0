package scraper

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches elements stripped before text extraction.
const noiseSelector = "script,style,nav,footer,header"

// contentSelector matches the elements whose visible text is collected.
const contentSelector = "p,h1,h2,h3,h4,li"

// minFragmentLen filters out navigation stubs and other short noise.
const minFragmentLen = 10

// ExtractText pulls the visible text out of a project page: noise elements
// are removed wholesale, then the text of content elements is collected in
// document order, dropping fragments at or below the minimum length. The
// surviving fragments are joined with newlines into one blob.
func ExtractText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	doc.Find(noiseSelector).Remove()

	var fragments []string
	doc.Find(contentSelector).Each(func(i int, s *goquery.Selection) {
		text := normalizeSpace(s.Text())
		if len(text) > minFragmentLen {
			fragments = append(fragments, text)
		}
	})

	return strings.Join(fragments, "\n")
}

// normalizeSpace trims a fragment and collapses internal runs of
// whitespace, matching how browsers render the text.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
