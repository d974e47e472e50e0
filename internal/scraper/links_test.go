package scraper

import (
	"reflect"
	"testing"
)

func TestHarvestLinksFiltersAndQualifies(t *testing.T) {
	page := []byte(`<html><body>
		<a href="/phds/project/machine-learning/?p123">ML project</a>
		<a href="https://www.findaphd.com/phds/project/nlp/?p456">NLP project</a>
		<a href="/about-us/">About</a>
		<a href="/advice/finding/">Advice</a>
		<a href="#top">Top</a>
	</body></html>`)

	got := HarvestLinks(page)
	want := []string{
		"https://www.findaphd.com/phds/project/machine-learning/?p123",
		"https://www.findaphd.com/phds/project/nlp/?p456",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestHarvestLinksDeduplicatesFirstSeenOrder(t *testing.T) {
	page := []byte(`<html><body>
		<a href="/phds/project/b/?p2">B (image link)</a>
		<a href="/phds/project/a/?p1">A</a>
		<a href="/phds/project/b/?p2">B (title link)</a>
		<a href="/phds/project/a/?p1">A again</a>
		<a href="/phds/project/c/?p3">C</a>
	</body></html>`)

	got := HarvestLinks(page)
	want := []string{
		"https://www.findaphd.com/phds/project/b/?p2",
		"https://www.findaphd.com/phds/project/a/?p1",
		"https://www.findaphd.com/phds/project/c/?p3",
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestHarvestLinksAbsoluteOtherHostKept(t *testing.T) {
	// Absolute links whose path carries the marker are kept as-is, even on
	// another host; malformed entries just fail to fetch downstream.
	page := []byte(`<a href="http://127.0.0.1:9999/phds/project/x">X</a>`)

	got := HarvestLinks(page)
	if len(got) != 1 || got[0] != "http://127.0.0.1:9999/phds/project/x" {
		t.Errorf("expected absolute link kept verbatim, got %v", got)
	}
}

func TestHarvestLinksEmptyPage(t *testing.T) {
	if got := HarvestLinks([]byte(`<html><body><p>No results.</p></body></html>`)); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}
