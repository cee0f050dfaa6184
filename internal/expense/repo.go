package expense

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

func (r *Repository) Insert(ctx context.Context, e *Expense) (*Expense, error) {
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO expenses (user_id, title, amount, category, date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.UserID, e.Title, e.Amount, e.Category, e.Date, e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*Expense, error) {
	var e Expense
	err := r.Pool.QueryRow(ctx,
		`SELECT id, user_id, title, amount, category, date, notes, created_at
		 FROM expenses
		 WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Notes, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Update(ctx context.Context, e *Expense) (*Expense, error) {
	err := r.Pool.QueryRow(ctx,
		`UPDATE expenses
		 SET title = $1, amount = $2, category = $3, date = $4, notes = $5
		 WHERE id = $6
		 RETURNING created_at`,
		e.Title, e.Amount, e.Category, e.Date, e.Notes, e.ID,
	).Scan(&e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List runs the page fetch and the total count concurrently; the two reads
// are independent and the pool is safe for concurrent use.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]Expense, int64, error) {
	f = f.normalized()
	selectSQL, countSQL, args := buildListQuery(f)

	var (
		items []Expense
		total int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.Pool.Query(ctx, selectSQL, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = make([]Expense, 0, f.Limit)
		for rows.Next() {
			var e Expense
			if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
				return err
			}
			items = append(items, e)
		}
		return rows.Err()
	})
	g.Go(func() error {
		return r.Pool.QueryRow(ctx, countSQL, args...).Scan(&total)
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) CategorySummary(ctx context.Context, userID int64, from, to *time.Time) (Summary, error) {
	where := `user_id = $1`
	args := []any{userID}
	if from != nil && to != nil {
		where += ` AND date >= $2 AND date <= $3`
		args = append(args, *from, *to)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		 FROM expenses
		 WHERE `+where+`
		 GROUP BY category
		 ORDER BY SUM(amount) DESC`,
		args...,
	)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	sum := Summary{Categories: make([]CategoryTotal, 0)}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return Summary{}, err
		}
		sum.Total += ct.Total
		sum.Categories = append(sum.Categories, ct)
	}
	return sum, rows.Err()
}
