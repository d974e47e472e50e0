package scraper

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// listingsBase qualifies relative project links found on search pages.
	listingsBase = "https://www.findaphd.com"
	// listingsPathMarker distinguishes project/search paths from site chrome.
	listingsPathMarker = "/phds/"
)

// HarvestLinks scans a search-results page for candidate project URLs.
// Only anchors whose path contains the listings marker are kept; relative
// hrefs are qualified against the site origin; exact duplicates are dropped
// preserving first-seen order. Links on other pages are never followed.
func HarvestLinks(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	base, _ := url.Parse(listingsBase)

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}

		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if !strings.Contains(u.Path, listingsPathMarker) {
			return
		}

		resolved := base.ResolveReference(u).String()
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links
}
