package listquery

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Params are the shared list-endpoint query parameters.
type Params struct {
	Page   int
	Limit  int
	Search string
	Status string
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Parse reads page/limit/search/status from the query string. Page and limit
// fall back to defaults when missing or below 1.
func Parse(c *fiber.Ctx) Params {
	p := Params{
		Page:   c.QueryInt("page", defaultPage),
		Limit:  c.QueryInt("limit", defaultLimit),
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Search filter values for nullable reference columns.
const (
	RefUnassigned = "unassigned"
	RefAssigned   = "assigned"
)

// ErrBadRefID is returned when a reference filter value is neither a mode
// literal nor a well-formed uuid.
var ErrBadRefID = errors.New("reference filter must be a valid uuid, \"unassigned\" or \"assigned\"")

// RefFilter applies the three-mode reference filter to a nullable uuid column:
// exact uuid match, "unassigned" (IS NULL) or "assigned" (IS NOT NULL).
// An empty value leaves the query untouched.
func RefFilter(q *gorm.DB, column, value string) (*gorm.DB, error) {
	switch strings.TrimSpace(value) {
	case "":
		return q, nil
	case RefUnassigned:
		return q.Where(column + " IS NULL"), nil
	case RefAssigned:
		return q.Where(column + " IS NOT NULL"), nil
	default:
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, ErrBadRefID
		}
		return q.Where(column+" = ?", id), nil
	}
}

// SearchScope builds a case-insensitive substring match ORed across columns.
func SearchScope(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	like := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = like
	}
	return q.Where(strings.Join(clauses, " OR "), args...)
}
