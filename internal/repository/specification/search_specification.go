package specification

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a lower-cased LIKE pattern that matches query as a literal substring.
func ContainsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// UseCaseSearchQuery matches the query as a case-insensitive substring of the
// name, the concept description or the benefit.
type UseCaseSearchQuery struct {
	Query string
}

func (s UseCaseSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := ContainsPattern(s.Query)
	return db.Where(
		`LOWER(use_case) LIKE ? ESCAPE '\' OR LOWER(concept_description) LIKE ? ESCAPE '\' OR LOWER(benefit) LIKE ? ESCAPE '\'`,
		pattern, pattern, pattern,
	)
}
