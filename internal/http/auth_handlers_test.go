package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spendlog/spendlog-backend/internal/auth"
	"github.com/spendlog/spendlog-backend/internal/httperr"
	"github.com/spendlog/spendlog-backend/internal/upload"
	"github.com/spendlog/spendlog-backend/internal/user"
	"github.com/spendlog/spendlog-backend/internal/validate"
)

type testEnv struct {
	app     *fiber.App
	users   *user.Memory
	tokens  *auth.TokenService
	uploads string
}

func newAuthEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	users := user.NewMemory()
	tokens := auth.NewTokenService("access-secret", "refresh-secret", time.Minute, 7*24*time.Hour)
	h := NewAuthHandler(users, tokens, upload.NewStore(dir), 7*24*time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: httperr.ErrorHandler})
	app.Post("/auth/signup", h.Signup)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/refresh-token", h.Refresh)

	return &testEnv{app: app, users: users, tokens: tokens, uploads: dir}
}

func multipartForm(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *testEnv) signup(t *testing.T, fields map[string]string, fileName string, fileContent []byte) *http.Response {
	t.Helper()
	fileField := ""
	if fileName != "" {
		fileField = "profilePhoto"
	}
	body, contentType := multipartForm(t, fields, fileField, fileName, fileContent)
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", body)
	req.Header.Set("Content-Type", contentType)
	// no timeout: bcrypt at cost 12 can take a while on slow runners
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postJSON(t *testing.T, target, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func uploadedFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func validSignupFields() map[string]string {
	return map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
	}
}

func TestSignup(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.signup(t, validSignupFields(), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
		UserID  int64  `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "User created!", body.Message)
	require.Equal(t, int64(1), body.UserID)
}

func TestSignupStoresPhoto(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.signup(t, validSignupFields(), "me.png", []byte("png-bytes"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, uploadedFiles(t, env.uploads))

	u, err := env.users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.ProfilePhoto)
}

func TestSignupValidationErrors(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.signup(t, map[string]string{"name": "A", "email": "not-an-email", "password": "short"}, "", nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message string                `json:"message"`
		Data    []validate.FieldError `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Validation failed", body.Message)

	fields := make([]string, 0, len(body.Data))
	for _, fe := range body.Data {
		fields = append(fields, fe.Field)
	}
	require.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestSignupFailureRemovesUploadedPhoto(t *testing.T) {
	env := newAuthEnv(t)

	fields := validSignupFields()
	fields["email"] = "not-an-email"

	resp := env.signup(t, fields, "me.jpg", []byte("jpg-bytes"))
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	require.Zero(t, uploadedFiles(t, env.uploads))
}

func TestSignupRejectsNonImagePhoto(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.signup(t, validSignupFields(), "resume.pdf", []byte("%PDF"))
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	require.Zero(t, uploadedFiles(t, env.uploads))
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.signup(t, validSignupFields(), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.signup(t, validSignupFields(), "", nil)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	env := newAuthEnv(t)
	env.signup(t, validSignupFields(), "", nil)

	resp := env.postJSON(t, "/auth/login", `{"email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.AccessToken)
	require.NotEmpty(t, body.RefreshToken)

	userID, err := env.tokens.VerifyAccessToken(body.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)

	cookie := resp.Header.Get("Set-Cookie")
	require.Contains(t, cookie, "refreshToken=")
	require.Contains(t, cookie, "HttpOnly")
	require.Contains(t, cookie, "SameSite=Strict")
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.postJSON(t, "/auth/login", `{"email":"nobody@example.com","password":"secret123"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newAuthEnv(t)
	env.signup(t, validSignupFields(), "", nil)

	resp := env.postJSON(t, "/auth/login", `{"email":"ada@example.com","password":"wrong-pass"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginValidation(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.postJSON(t, "/auth/login", `{"email":"not-an-email","password":""}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRefreshFromBody(t *testing.T) {
	env := newAuthEnv(t)

	refresh, err := env.tokens.IssueRefreshToken(1)
	require.NoError(t, err)

	resp := env.postJSON(t, "/auth/refresh-token", `{"refreshToken":"`+refresh+`"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	userID, err := env.tokens.VerifyAccessToken(body.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)
}

func TestRefreshFromCookie(t *testing.T) {
	env := newAuthEnv(t)

	refresh, err := env.tokens.IssueRefreshToken(4)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshMissingToken(t *testing.T) {
	env := newAuthEnv(t)

	resp := env.postJSON(t, "/auth/refresh-token", `{}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "no refresh token provided", body.Message)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newAuthEnv(t)

	access, err := env.tokens.IssueAccessToken(1)
	require.NoError(t, err)

	resp := env.postJSON(t, "/auth/refresh-token", `{"refreshToken":"`+access+`"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
