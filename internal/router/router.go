package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spendlog/spendlog-backend/internal/expense"
	handlers "github.com/spendlog/spendlog-backend/internal/http"
)

type Router struct {
	Auth     *handlers.AuthHandler
	Expenses *expense.Handler
	AuthMW   fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/auth/signup", r.Auth.Signup)
	app.Post("/auth/login", r.Auth.Login)
	app.Post("/auth/refresh-token", r.Auth.Refresh)

	app.Post("/expense/create", r.AuthMW, r.Expenses.Create)
	app.Put("/expense/update/:id", r.AuthMW, r.Expenses.Update)
	app.Delete("/expense/delete/:id", r.AuthMW, r.Expenses.Delete)
	app.Get("/expense/list", r.AuthMW, r.Expenses.List)
	app.Get("/expense/summary", r.AuthMW, r.Expenses.Summary)
}
