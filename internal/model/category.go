package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategory is used for expenses recorded without a category.
const DefaultCategory = "Other"

var titleCaser = cases.Title(language.Und)

// NormalizeCategory trims, collapses inner whitespace and title-cases each word,
// so "  food   COURT" and "Food Court" group together. Blank becomes DefaultCategory.
func NormalizeCategory(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return DefaultCategory
	}
	return titleCaser.String(strings.Join(fields, " "))
}
