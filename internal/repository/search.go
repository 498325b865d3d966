package repository

import (
	"strings"

	"gorm.io/gorm"
)

// StatusAll is the sentinel that disables status narrowing.
const StatusAll = "All"

// Search is free text plus an optional status. The zero value matches
// everything.
type Search struct {
	Text   string
	Status string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern returns the bound LIKE argument for the search text.
func (s Search) Pattern() string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s.Text))) + "%"
}

func (s Search) hasText() bool { return strings.TrimSpace(s.Text) != "" }

func (s Search) hasStatus() bool {
	st := strings.TrimSpace(s.Status)
	return st != "" && !strings.EqualFold(st, StatusAll)
}

// Scope narrows a query by case-insensitive substring over textCols and by
// exact match on statusCol. Column names come from code, never from input;
// user values are always bound parameters.
func (s Search) Scope(textCols []string, statusCol string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.hasText() && len(textCols) > 0 {
			preds := make([]string, len(textCols))
			args := make([]interface{}, len(textCols))
			pattern := s.Pattern()
			for i, col := range textCols {
				preds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
				args[i] = pattern
			}
			db = db.Where("("+strings.Join(preds, " OR ")+")", args...)
		}
		if s.hasStatus() && statusCol != "" {
			db = db.Where(statusCol+" = ?", strings.TrimSpace(s.Status))
		}
		return db
	}
}
