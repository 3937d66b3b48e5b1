package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

// HeadingTags are the heading levels read from every page, in prompt order.
var HeadingTags = []atom.Atom{atom.H1, atom.H2, atom.H3}

// PageHeadings holds the trimmed heading texts of one page keyed by tag.
type PageHeadings map[atom.Atom][]string

// ConsolidatedHeadings holds the heading texts of all scraped pages keyed by tag.
type ConsolidatedHeadings map[atom.Atom][]string

func newHeadings() map[atom.Atom][]string {
	h := make(map[atom.Atom][]string, len(HeadingTags))
	for _, tag := range HeadingTags {
		h[tag] = []string{}
	}
	return h
}

// ExtractHeadings collects the text of every h1, h2 and h3 element in
// document order. All three keys are present even when a level is missing.
func ExtractHeadings(doc *goquery.Document) PageHeadings {
	headings := PageHeadings(newHeadings())
	for _, tag := range HeadingTags {
		doc.Find(tag.String()).Each(func(_ int, s *goquery.Selection) {
			headings[tag] = append(headings[tag], strings.TrimSpace(s.Text()))
		})
	}
	return headings
}

// Consolidate concatenates the headings of every successful page in the
// order the results are given. Failed pages contribute nothing.
func Consolidate(results []PageResult) ConsolidatedHeadings {
	consolidated := ConsolidatedHeadings(newHeadings())
	for _, r := range results {
		if !r.OK() {
			continue
		}
		for _, tag := range HeadingTags {
			consolidated[tag] = append(consolidated[tag], r.Headings[tag]...)
		}
	}
	return consolidated
}
