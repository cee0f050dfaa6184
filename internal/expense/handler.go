package expense

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendlog/spendlog-backend/internal/auth"
	"github.com/spendlog/spendlog-backend/internal/httperr"
	"github.com/spendlog/spendlog-backend/internal/validate"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req MutateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	input, errs := req.validated()
	if len(errs) > 0 {
		return httperr.Validation(errs)
	}
	input.UserID = userID

	created, err := h.Store.Insert(c.Context(), &input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Expense created successfully",
		"expense": created,
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req MutateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	input, errs := req.validated()
	if len(errs) > 0 {
		return httperr.Validation(errs)
	}

	existing, err := h.Store.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("expense not found")
		}
		return err
	}
	if existing.UserID != userID {
		return httperr.Forbidden("you are not authorized to update this expense")
	}

	input.ID = existing.ID
	input.UserID = existing.UserID

	updated, err := h.Store.Update(c.Context(), &input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Expense updated successfully",
		"expense": updated,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	existing, err := h.Store.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return httperr.NotFound("expense not found")
		}
		return err
	}
	if existing.UserID != userID {
		return httperr.Forbidden("you are not authorized to delete this expense")
	}

	if err := h.Store.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Expense deleted successfully"})
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	f, errs := parseListFilter(c)
	if len(errs) > 0 {
		return httperr.Validation(errs)
	}
	f.UserID = userID

	items, total, err := h.Store.List(c.Context(), f)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data":  items,
		"total": total,
	})
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var errs []validate.FieldError
	from := parseDateParam(c, "from", &errs)
	to := parseDateParam(c, "to", &errs)
	if from != nil && to == nil && len(errs) == 0 {
		errs = append(errs, validate.FieldError{Field: "to", Message: "'to' date is required when 'from' is provided"})
	}
	if len(errs) > 0 {
		return httperr.Validation(errs)
	}

	sum, err := h.Store.CategorySummary(c.Context(), userID, from, to)
	if err != nil {
		return err
	}
	return c.JSON(sum)
}

// validated trims and coerces the request body, collecting one error per bad
// field the way the signup validators do.
func (r MutateRequest) validated() (Expense, []validate.FieldError) {
	var errs []validate.FieldError

	title := strings.TrimSpace(r.Title)
	if fe := validate.Field("title", title, "required,min=2", "Title must be at least 2 characters"); fe != nil {
		errs = append(errs, *fe)
	}

	amount, err := r.Amount.Float()
	if err != nil {
		errs = append(errs, validate.FieldError{Field: "amount", Message: "Invalid amount"})
	}

	if fe := validate.Field("category", r.Category, "required", "Category is required"); fe != nil {
		errs = append(errs, *fe)
	}

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		errs = append(errs, validate.FieldError{Field: "date", Message: "Invalid date"})
	}

	return Expense{
		Title:    title,
		Amount:   amount,
		Category: r.Category,
		Date:     date,
		Notes:    r.Notes,
	}, errs
}

func parseListFilter(c *fiber.Ctx) (ListFilter, []validate.FieldError) {
	var errs []validate.FieldError

	f := ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
		Page:     1,
		Limit:    defaultLimit,
	}

	f.Date = parseDateParam(c, "date", &errs)
	f.From = parseDateParam(c, "from", &errs)
	f.To = parseDateParam(c, "to", &errs)

	if f.From != nil {
		if f.To == nil {
			if c.Query("to") == "" {
				errs = append(errs, validate.FieldError{Field: "to", Message: "'to' date is required when 'from' is provided"})
			}
		} else if f.To.Before(*f.From) {
			errs = append(errs, validate.FieldError{Field: "to", Message: "'to' date must be greater than or equal to 'from' date"})
		}
	}

	if s := c.Query("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 {
			errs = append(errs, validate.FieldError{Field: "page", Message: "Page must be >= 1"})
		} else {
			f.Page = page
		}
	}

	if s := c.Query("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > maxLimit {
			errs = append(errs, validate.FieldError{Field: "limit", Message: "Limit must be 1-100"})
		} else {
			f.Limit = limit
		}
	}

	return f, errs
}

func parseDateParam(c *fiber.Ctx, name string, errs *[]validate.FieldError) *time.Time {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		*errs = append(*errs, validate.FieldError{Field: name, Message: "Invalid " + name})
		return nil
	}
	return &t
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, httperr.NotFound("expense not found")
	}
	return id, nil
}
