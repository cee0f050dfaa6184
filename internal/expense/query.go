package expense

import (
	"fmt"
	"strings"
	"time"
)

const (
	SortByDate   = "date"
	SortByAmount = "amount"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	defaultLimit = 10
	maxLimit     = 100
)

// ListFilter carries the optional filter/sort/paginate parameters of a list
// query, always scoped to one owner.
type ListFilter struct {
	UserID   int64
	Date     *time.Time
	From     *time.Time
	To       *time.Time
	Category string
	Search   string
	SortBy   string
	Order    string
	Page     int
	Limit    int
}

// normalized applies defaults and whitelists. An unknown sort field falls
// back to date, an unknown order to desc.
func (f ListFilter) normalized() ListFilter {
	if f.SortBy != SortByAmount {
		f.SortBy = SortByDate
	}
	if f.Order != OrderAsc {
		f.Order = OrderDesc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

func (f ListFilter) offset() int {
	return (f.Page - 1) * f.Limit
}

// buildListQuery renders the page-fetch and count statements over a shared
// WHERE clause and argument list. An exact date takes precedence over a range;
// the range is inclusive on both ends; search matches title or notes
// case-insensitively.
func buildListQuery(f ListFilter) (selectSQL, countSQL string, args []any) {
	where := []string{"user_id = $1"}
	args = []any{f.UserID}

	if f.Date != nil {
		args = append(args, *f.Date)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	} else if f.From != nil && f.To != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR notes ILIKE $%d)", len(args), len(args)))
	}

	clause := strings.Join(where, " AND ")

	selectSQL = fmt.Sprintf(
		`SELECT id, user_id, title, amount, category, date, notes, created_at
		 FROM expenses
		 WHERE %s
		 ORDER BY %s %s
		 OFFSET %d LIMIT %d`,
		clause, f.SortBy, strings.ToUpper(f.Order), f.offset(), f.Limit,
	)
	countSQL = fmt.Sprintf(`SELECT COUNT(*) FROM expenses WHERE %s`, clause)
	return selectSQL, countSQL, args
}
