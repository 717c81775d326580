package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for course documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with English stemming
//  2. Prefix matching on course codes and departments for autocomplete
//  3. Exact keyword matching for GE area and foundation area filters
//  4. Numeric range queries on units
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title, the primary search target, with term vectors for highlighting.
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Course code, tokenized without stemming so "EE BIOL 100" splits into
	// matchable pieces.
	codeFieldMapping := bleve.NewTextFieldMapping()
	codeFieldMapping.Analyzer = simple.Name
	codeFieldMapping.Store = true
	codeFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("code", codeFieldMapping)

	deptFieldMapping := bleve.NewTextFieldMapping()
	deptFieldMapping.Analyzer = simple.Name
	deptFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("dept", deptFieldMapping)

	// Description is searchable but not stored.
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Area labels are exact-match filter fields, and facetable.
	geAreaFieldMapping := bleve.NewTextFieldMapping()
	geAreaFieldMapping.Analyzer = keyword.Name
	geAreaFieldMapping.Store = true
	geAreaFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("ge_area", geAreaFieldMapping)

	foundationFieldMapping := bleve.NewTextFieldMapping()
	foundationFieldMapping.Analyzer = keyword.Name
	foundationFieldMapping.Store = true
	foundationFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("foundation_area", foundationFieldMapping)

	unitsFieldMapping := bleve.NewNumericFieldMapping()
	unitsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("units", unitsFieldMapping)

	hasLabFieldMapping := bleve.NewBooleanFieldMapping()
	hasLabFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("has_lab", hasLabFieldMapping)

	hasWritingFieldMapping := bleve.NewBooleanFieldMapping()
	hasWritingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("has_writing_ii", hasWritingFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
