package expense

import (
	"strconv"
	"strings"
	"time"
)

type Expense struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RawAmount accepts the amount field as either a JSON number or a quoted
// string, keeping the raw text so validation can name the field instead of
// failing the whole body decode.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(b []byte) error {
	*a = RawAmount(strings.Trim(string(b), `"`))
	return nil
}

func (a RawAmount) Float() (float64, error) {
	s := string(a)
	if s == "" || s == "null" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// MutateRequest is the body shape shared by create and update. Update replaces
// every mutable field, there are no partial updates.
type MutateRequest struct {
	Title    string    `json:"title"`
	Amount   RawAmount `json:"amount"`
	Category string    `json:"category"`
	Date     string    `json:"date"`
	Notes    *string   `json:"notes"`
}

// CategoryTotal is one row of the per-category summary.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

type Summary struct {
	Total      float64         `json:"total"`
	Categories []CategoryTotal `json:"byCategory"`
}
