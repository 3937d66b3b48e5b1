package scraper

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

func TestExtractHeadings_DocumentOrder(t *testing.T) {
	html := `<div><h2>b</h2><section><h2> a </h2><h1>x</h1></section><h2></h2><h3>c</h3></div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ExtractHeadings(doc)
	want := PageHeadings{
		atom.H1: {"x"},
		atom.H2: {"b", "a", ""},
		atom.H3: {"c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConsolidate(t *testing.T) {
	failed := PageResult{URL: "https://b.example/", Err: &ScrapeError{URL: "https://b.example/", StatusCode: 404}}

	testCases := []struct {
		name     string
		results  []PageResult
		expected ConsolidatedHeadings
	}{
		{
			name: "SecondPageFails",
			results: []PageResult{
				{URL: "https://a.example/", Headings: PageHeadings{atom.H1: {"Top Picks"}, atom.H2: {}, atom.H3: {}}},
				failed,
			},
			expected: ConsolidatedHeadings{atom.H1: {"Top Picks"}, atom.H2: {}, atom.H3: {}},
		},
		{
			name: "LinkOrder",
			results: []PageResult{
				{URL: "1", Headings: PageHeadings{atom.H1: {"a1", "a2"}, atom.H2: {"a3"}, atom.H3: {}}},
				failed,
				{URL: "3", Headings: PageHeadings{atom.H1: {"c1"}, atom.H2: {}, atom.H3: {"c2"}}},
			},
			expected: ConsolidatedHeadings{atom.H1: {"a1", "a2", "c1"}, atom.H2: {"a3"}, atom.H3: {"c2"}},
		},
		{
			name:     "AllFailed",
			results:  []PageResult{failed, failed},
			expected: ConsolidatedHeadings{atom.H1: {}, atom.H2: {}, atom.H3: {}},
		},
		{
			name:     "NoPages",
			results:  nil,
			expected: ConsolidatedHeadings{atom.H1: {}, atom.H2: {}, atom.H3: {}},
		},
		{
			name: "UnknownTagsIgnored",
			results: []PageResult{
				{URL: "1", Headings: PageHeadings{atom.H1: {"a"}, atom.H4: {"ignored"}}},
			},
			expected: ConsolidatedHeadings{atom.H1: {"a"}, atom.H2: {}, atom.H3: {}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Consolidate(tc.results)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestPageResult_OK(t *testing.T) {
	if !(PageResult{Headings: PageHeadings{}}).OK() {
		t.Error("expected result without error to be OK")
	}

	res := PageResult{Err: &ScrapeError{URL: "u", Err: errors.New("boom")}}
	if res.OK() {
		t.Error("expected result with error to fail")
	}
	if !errors.Is(res.Err, ErrScrapeFailed) {
		t.Errorf("expected ErrScrapeFailed, got %v", res.Err)
	}
}
