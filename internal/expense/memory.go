package expense

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory Store mirroring the repository's query semantics.
// Handler tests run against it.
type Memory struct {
	mu       sync.Mutex
	seq      int64
	expenses map[int64]Expense
}

func NewMemory() *Memory {
	return &Memory{expenses: make(map[int64]Expense)}
}

func (m *Memory) Insert(_ context.Context, e *Expense) (*Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	stored := *e
	stored.ID = m.seq
	stored.CreatedAt = time.Now()
	m.expenses[stored.ID] = stored

	out := stored
	return &out, nil
}

func (m *Memory) Get(_ context.Context, id int64) (*Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := e
	return &out, nil
}

func (m *Memory) Update(_ context.Context, e *Expense) (*Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.expenses[e.ID]
	if !ok {
		return nil, ErrNotFound
	}

	stored := *e
	stored.CreatedAt = existing.CreatedAt
	m.expenses[stored.ID] = stored

	out := stored
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *Memory) List(_ context.Context, f ListFilter) ([]Expense, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f = f.normalized()

	matches := make([]Expense, 0)
	for _, e := range m.expenses {
		if matchesFilter(e, f) {
			matches = append(matches, e)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		var less bool
		if f.SortBy == SortByAmount {
			less = matches[i].Amount < matches[j].Amount
		} else {
			less = matches[i].Date.Before(matches[j].Date)
		}
		if f.Order == OrderDesc {
			return !less
		}
		return less
	})

	total := int64(len(matches))

	start := f.offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + f.Limit
	if end > len(matches) {
		end = len(matches)
	}

	page := make([]Expense, end-start)
	copy(page, matches[start:end])
	return page, total, nil
}

func (m *Memory) CategorySummary(_ context.Context, userID int64, from, to *time.Time) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	totals := make(map[string]*CategoryTotal)
	var sum Summary
	for _, e := range m.expenses {
		if e.UserID != userID {
			continue
		}
		if from != nil && to != nil && (e.Date.Before(*from) || e.Date.After(*to)) {
			continue
		}
		ct, ok := totals[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category}
			totals[e.Category] = ct
		}
		ct.Total += e.Amount
		ct.Count++
		sum.Total += e.Amount
	}

	sum.Categories = make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		sum.Categories = append(sum.Categories, *ct)
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		return sum.Categories[i].Total > sum.Categories[j].Total
	})
	return sum, nil
}

func matchesFilter(e Expense, f ListFilter) bool {
	if e.UserID != f.UserID {
		return false
	}
	if f.Date != nil {
		if !e.Date.Equal(*f.Date) {
			return false
		}
	} else if f.From != nil && f.To != nil {
		if e.Date.Before(*f.From) || e.Date.After(*f.To) {
			return false
		}
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(e.Title), needle)
		inNotes := e.Notes != nil && strings.Contains(strings.ToLower(*e.Notes), needle)
		if !inTitle && !inNotes {
			return false
		}
	}
	return true
}
