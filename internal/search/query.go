package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a course search query.
type Params struct {
	Query string // User's search query

	// Filters. Area labels are matched exactly, as stored.
	GEArea         string
	FoundationArea string
	Dept           string
	MinUnits       int
	MaxUnits       int
	RequireLab     bool
	RequireWriting bool

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "units"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool // Include area facet counts in results
	Highlight     bool // Include match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		Highlight:     true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string  `json:"query"`
	Total  uint64  `json:"total"`
	TookMs int64   `json:"took_ms"`
	Hits   []Hit   `json:"hits"`
	Facets *Facets `json:"facets,omitempty"`
}

// Hit represents a single matched course.
type Hit struct {
	ID             string            `json:"id"`
	Score          float64           `json:"score"`
	Name           string            `json:"name"`
	Code           string            `json:"code"`
	Dept           string            `json:"dept,omitempty"`
	GEArea         string            `json:"ge_area,omitempty"`
	FoundationArea string            `json:"foundation_area,omitempty"`
	Units          int               `json:"units,omitempty"`
	HasLab         bool              `json:"has_lab,omitempty"`
	HasWritingII   bool              `json:"has_writing_ii,omitempty"`
	Highlights     map[string]string `json:"highlights,omitempty"`
}

// Facets contains facet counts over the result set.
type Facets struct {
	GEAreas     []FacetCount `json:"ge_areas,omitempty"`
	Foundations []FacetCount `json:"foundations,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a course search query.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("ge_area", bleve.NewFacetRequest("ge_area", 20))
		searchRequest.AddFacet("foundation_area", bleve.NewFacetRequest("foundation_area", 10))
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("code")
	}

	searchRequest.Fields = []string{
		"id", "name", "code", "dept", "ge_area", "foundation_area",
		"units", "has_lab", "has_writing_ii",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		if c, ok := hit.Fields["code"].(string); ok {
			h.Code = c
		}
		if d, ok := hit.Fields["dept"].(string); ok {
			h.Dept = d
		}
		if a, ok := hit.Fields["ge_area"].(string); ok {
			h.GEArea = a
		}
		if f, ok := hit.Fields["foundation_area"].(string); ok {
			h.FoundationArea = f
		}
		if u, ok := hit.Fields["units"].(float64); ok {
			h.Units = int(u)
		}
		if l, ok := hit.Fields["has_lab"].(bool); ok {
			h.HasLab = l
		}
		if w, ok := hit.Fields["has_writing_ii"].(bool); ok {
			h.HasWritingII = w
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	// Main text query: titles carry the highest boost, course codes are
	// matched both tokenized and by prefix so "ee biol 1" autocompletes.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		codeMatch := bleve.NewMatchQuery(params.Query)
		codeMatch.SetField("code")
		codeMatch.SetBoost(2.0)
		textQueries = append(textQueries, codeMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		textQueries = append(textQueries, descMatch)

		// Fuzzy matching for typo tolerance on the title.
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)

			codePrefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			codePrefix.SetField("code")
			codePrefix.SetBoost(0.5)
			textQueries = append(textQueries, codePrefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.GEArea != "" {
		tq := bleve.NewTermQuery(params.GEArea)
		tq.SetField("ge_area")
		queries = append(queries, tq)
	}

	if params.FoundationArea != "" {
		tq := bleve.NewTermQuery(params.FoundationArea)
		tq.SetField("foundation_area")
		queries = append(queries, tq)
	}

	if params.Dept != "" {
		dq := bleve.NewMatchQuery(params.Dept)
		dq.SetField("dept")
		queries = append(queries, dq)
	}

	if params.MinUnits > 0 || params.MaxUnits > 0 {
		min := float64(params.MinUnits)
		max := float64(params.MaxUnits)
		if params.MaxUnits == 0 {
			max = math.MaxFloat64
		}
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("units")
		queries = append(queries, rangeQuery)
	}

	if params.RequireLab {
		bq := bleve.NewBoolFieldQuery(true)
		bq.SetField("has_lab")
		queries = append(queries, bq)
	}

	if params.RequireWriting {
		bq := bleve.NewBoolFieldQuery(true)
		bq.SetField("has_writing_ii")
		queries = append(queries, bq)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "title", "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "units":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"units", "name"})
		} else {
			req.SortBy([]string{"-units", "name"})
		}
	default:
		req.SortBy([]string{"-_score"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) *Facets {
	facets := &Facets{}

	if areaFacet, ok := result.Facets["ge_area"]; ok {
		for _, term := range areaFacet.Terms.Terms() {
			facets.GEAreas = append(facets.GEAreas, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if foundationFacet, ok := result.Facets["foundation_area"]; ok {
		for _, term := range foundationFacet.Terms.Terms() {
			facets.Foundations = append(facets.Foundations, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
