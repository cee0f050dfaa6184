package expense

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("expense not found")

// Store is the persistence boundary for expenses. The pgx repository is the
// production implementation; Memory backs the handler tests.
type Store interface {
	Insert(ctx context.Context, e *Expense) (*Expense, error)
	Get(ctx context.Context, id int64) (*Expense, error)
	Update(ctx context.Context, e *Expense) (*Expense, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ListFilter) ([]Expense, int64, error)
	CategorySummary(ctx context.Context, userID int64, from, to *time.Time) (Summary, error)
}
