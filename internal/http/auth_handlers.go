// Package http holds the authentication HTTP handlers.
package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spendlog/spendlog-backend/internal/auth"
	"github.com/spendlog/spendlog-backend/internal/httperr"
	"github.com/spendlog/spendlog-backend/internal/upload"
	"github.com/spendlog/spendlog-backend/internal/user"
	"github.com/spendlog/spendlog-backend/internal/validate"
)

const refreshCookie = "refreshToken"

type AuthHandler struct {
	Users      user.Store
	Tokens     *auth.TokenService
	Uploads    *upload.Store
	RefreshTTL time.Duration
}

func NewAuthHandler(users user.Store, tokens *auth.TokenService, uploads *upload.Store, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Uploads: uploads, RefreshTTL: refreshTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Signup accepts a multipart form: name, email, password and an optional
// profilePhoto file. The photo lands on disk before validation runs, so every
// failure path after it must remove the stored file; a failed cleanup is
// surfaced instead of the original error.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := c.FormValue("email")
	password := c.FormValue("password")

	var photoPath string
	if file, err := c.FormFile("profilePhoto"); err == nil && file != nil {
		photoPath, err = h.Uploads.Save(file)
		if err != nil {
			return err
		}
	}

	var errs []validate.FieldError
	if fe := validate.Field("name", name, "required,min=2", "Name must be at least 2 characters"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validate.Field("email", email, "required,email", "Invalid email address"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validate.Field("password", password, "required,min=6", "Password must be at least 6 characters"); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		if cleanupErr := h.Uploads.Remove(photoPath); cleanupErr != nil {
			return cleanupErr
		}
		return httperr.Validation(errs)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		if cleanupErr := h.Uploads.Remove(photoPath); cleanupErr != nil {
			return cleanupErr
		}
		return err
	}

	u := &user.User{Name: name, Email: email, PasswordHash: hashed}
	if photoPath != "" {
		u.ProfilePhoto = &photoPath
	}

	id, err := h.Users.Create(c.Context(), u)
	if err != nil {
		if cleanupErr := h.Uploads.Remove(photoPath); cleanupErr != nil {
			return cleanupErr
		}
		if errors.Is(err, user.ErrEmailTaken) {
			return httperr.Validation([]validate.FieldError{{Field: "email", Message: "Email already registered"}})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "User created!",
		"userId":  id,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	var errs []validate.FieldError
	if fe := validate.Field("email", body.Email, "required,email", "Invalid email address"); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validate.Field("password", body.Password, "required,min=6", "Password must be at least 6 characters"); fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return httperr.Validation(errs)
	}

	u, err := h.Users.GetByEmail(c.Context(), body.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return httperr.Unauthorized("user with this email does not exist")
		}
		return err
	}

	if !auth.CheckPassword(body.Password, u.PasswordHash) {
		return httperr.Unauthorized("password invalid")
	}

	accessToken, err := h.Tokens.IssueAccessToken(u.ID)
	if err != nil {
		return err
	}
	refreshToken, err := h.Tokens.IssueRefreshToken(u.ID)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
		MaxAge:   int(h.RefreshTTL.Seconds()),
	})

	return c.JSON(fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Refresh mints a new access token from a valid refresh token, read from the
// cookie first and the body second. The refresh token itself is not rotated.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(refreshCookie)
	if token == "" {
		var body refreshRequest
		if err := c.BodyParser(&body); err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		return httperr.Unauthorized("no refresh token provided")
	}

	userID, err := h.Tokens.VerifyRefreshToken(token)
	if err != nil {
		return err
	}

	accessToken, err := h.Tokens.IssueAccessToken(userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"accessToken": accessToken})
}
