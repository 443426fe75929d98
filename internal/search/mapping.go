package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

const tagAnalyzer = "tag"

// buildIndexMapping creates the Bleve index mapping for book documents.
//
// Text fields use the English analyzer (stemming); tag fields are indexed as
// single lower-cased tokens so filters match whole values regardless of case.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	// Registration only fails on a malformed definition.
	_ = indexMapping.AddCustomAnalyzer(tagAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})

	docMapping := bleve.NewDocumentMapping()

	textField := func(store, vectors bool) *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = en.AnalyzerName
		f.Store = store
		f.IncludeTermVectors = vectors
		return f
	}
	keywordField := func() *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = tagAnalyzer
		f.Store = true
		f.IncludeInAll = false
		return f
	}
	numericField := func() *mapping.FieldMapping {
		f := bleve.NewNumericFieldMapping()
		f.Store = true
		f.IncludeInAll = false
		return f
	}

	docMapping.AddFieldMappingsAt("title", textField(true, true))
	docMapping.AddFieldMappingsAt("author", textField(true, true))
	docMapping.AddFieldMappingsAt("series", textField(true, false))
	// Descriptions are searchable but too large to store.
	docMapping.AddFieldMappingsAt("description", textField(false, false))

	docMapping.AddFieldMappingsAt("id", keywordField())
	docMapping.AddFieldMappingsAt("genre", keywordField())
	docMapping.AddFieldMappingsAt("moods", keywordField())
	docMapping.AddFieldMappingsAt("content_warnings", keywordField())

	docMapping.AddFieldMappingsAt("spice", numericField())
	docMapping.AddFieldMappingsAt("rating", numericField())
	docMapping.AddFieldMappingsAt("created_at", numericField())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}
