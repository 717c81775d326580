// Package search provides full-text course search using Bleve. It covers
// fuzzy title matching, department and course-code prefix lookup, and
// exact filtering on GE area and foundation area.
package search

import (
	"strconv"

	"github.com/geasyapp/geasy-server/internal/domain"
)

// CourseDocument is the document structure for the Bleve index.
//
// GE area and foundation area are denormalized into each course document
// so area filters resolve inside the index without touching the store.
type CourseDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"` // Course title
	Code        string `json:"code"` // "EE BIOL 100"
	Dept        string `json:"dept"`
	Description string `json:"description,omitempty"`

	GEArea         string `json:"ge_area,omitempty"`
	FoundationArea string `json:"foundation_area,omitempty"`

	Units        int  `json:"units"`
	HasLab       bool `json:"has_lab"`
	HasWritingII bool `json:"has_writing_ii"`
}

// ToMap converts the document to a map with lowercase field names so
// field names match the index mapping. Bleve defaults to Go struct field
// names, which are capitalized.
func (d *CourseDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":             d.ID,
		"name":           d.Name,
		"code":           d.Code,
		"dept":           d.Dept,
		"units":          d.Units,
		"has_lab":        d.HasLab,
		"has_writing_ii": d.HasWritingII,
	}

	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.GEArea != "" {
		m["ge_area"] = d.GEArea
	}
	if d.FoundationArea != "" {
		m["foundation_area"] = d.FoundationArea
	}

	return m
}

// CourseToDocument converts a domain Course to a CourseDocument. The
// foundation area is provided by the caller, since the search package
// does not depend on the area mapping table.
func CourseToDocument(c *domain.Course, foundationArea string) *CourseDocument {
	return &CourseDocument{
		ID:             strconv.FormatInt(c.ID, 10),
		Name:           c.Title,
		Code:           c.Code(),
		Dept:           c.Dept,
		Description:    c.Description,
		GEArea:         c.GEArea,
		FoundationArea: foundationArea,
		Units:          c.Units,
		HasLab:         c.HasLab,
		HasWritingII:   c.HasWritingII,
	}
}
