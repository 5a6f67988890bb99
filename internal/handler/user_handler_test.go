package handler

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/service"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) Create(email, passwordHash string) error {
	f.users[email] = &models.User{ID: len(f.users) + 1, Email: email, PasswordHash: passwordHash}
	return nil
}

func (f *fakeUserStore) UpdateProfile(email, firstName, lastName, dob, address string) error {
	u := f.users[email]
	date, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return err
	}
	u.FirstName = &firstName
	u.LastName = &lastName
	u.DOB = &date
	u.Address = &address
	return nil
}

// newUserTestApp wires the user and people routes the same way main
// does: auth middleware first, then the handler.
func newUserTestApp(t *testing.T) *fiber.App {
	t.Helper()

	authSvc := service.NewAuthService(newFakeUserStore(), "test-secret", nil)
	userHandler := NewUserHandler(authSvc)
	personHandler := NewPersonHandler(service.NewCatalogService(emptyStore{}))

	app := fiber.New()
	app.Get("/people/:id", middleware.RequireAuth(authSvc.Verify), personHandler.GetPerson)
	app.Post("/user/register", userHandler.Register)
	app.Post("/user/login", userHandler.Login)
	app.Get("/user/:email/profile", middleware.OptionalAuth(authSvc.Verify), userHandler.GetProfile)
	app.Put("/user/:email/profile", middleware.RequireAuth(authSvc.Verify), userHandler.UpdateProfile)
	return app
}

func loginToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	register := httptest.NewRequest("POST", "/user/register", strings.NewReader(`{"email":"`+email+`","password":"password123"}`))
	register.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(register)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d", email, resp.StatusCode)
	}
	resp.Body.Close()

	login := httptest.NewRequest("POST", "/user/login", strings.NewReader(`{"email":"`+email+`","password":"password123"}`))
	login.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(login)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	defer resp.Body.Close()

	var pair models.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		t.Fatalf("decode token pair: %v", err)
	}
	return pair.BearerToken.Token
}

func putProfile(t *testing.T, app *fiber.App, email, token, body string) (int, ErrorResponse, []byte) {
	t.Helper()

	req := httptest.NewRequest("PUT", "/user/"+email+"/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var errBody ErrorResponse
	_ = json.Unmarshal(raw, &errBody)
	return resp.StatusCode, errBody, raw
}

func TestUpdateProfileRequiresToken(t *testing.T) {
	app := newUserTestApp(t)

	status, errBody, _ := putProfile(t, app, "mike@example.com", "", `{}`)
	if status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if errBody.Message != "Authorization header ('Bearer token') not found" {
		t.Errorf("message = %q", errBody.Message)
	}
}

func TestUpdateProfileOwnershipBeforeBodyValidation(t *testing.T) {
	app := newUserTestApp(t)
	_ = loginToken(t, app, "mike@example.com")
	otherToken := loginToken(t, app, "other@example.com")

	// A non-owner with an incomplete body is rejected for ownership,
	// not for the body.
	status, errBody, _ := putProfile(t, app, "mike@example.com", otherToken, `{"firstName":"A"}`)
	if status != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", status)
	}
	if errBody.Message != "Forbidden" {
		t.Errorf("message = %q, want Forbidden", errBody.Message)
	}
}

func TestUpdateProfileOwnerFlow(t *testing.T) {
	app := newUserTestApp(t)
	token := loginToken(t, app, "mike@example.com")

	status, errBody, _ := putProfile(t, app, "mike@example.com", token, `{"firstName":"A"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("incomplete body status = %d, want 400", status)
	}
	if errBody.Message != "Request body incomplete: firstName, lastName, dob and address are required." {
		t.Errorf("incomplete body message = %q", errBody.Message)
	}

	full := `{"firstName":"Michael","lastName":"Jordan","dob":"1963-02-17","address":"123 Fake Street, Springfield"}`
	status, _, raw := putProfile(t, app, "mike@example.com", token, full)
	if status != fiber.StatusOK {
		t.Fatalf("full update status = %d, want 200 (body %s)", status, raw)
	}
	var updated models.UpdatedProfile
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.FirstName != "Michael" || updated.DOB != "1963-02-17" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestGetProfileOwnerViewThroughMiddleware(t *testing.T) {
	app := newUserTestApp(t)
	token := loginToken(t, app, "mike@example.com")

	full := `{"firstName":"Michael","lastName":"Jordan","dob":"1963-02-17","address":"123 Fake Street, Springfield"}`
	if status, _, _ := putProfile(t, app, "mike@example.com", token, full); status != fiber.StatusOK {
		t.Fatalf("seed profile: status %d", status)
	}

	get := func(auth string) map[string]any {
		req := httptest.NewRequest("GET", "/user/mike@example.com/profile", nil)
		if auth != "" {
			req.Header.Set("Authorization", "Bearer "+auth)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body
	}

	anonymous := get("")
	if _, ok := anonymous["dob"]; ok {
		t.Errorf("anonymous caller sees dob: %v", anonymous)
	}
	if _, ok := anonymous["address"]; ok {
		t.Errorf("anonymous caller sees address: %v", anonymous)
	}

	owner := get(token)
	if owner["dob"] != "1963-02-17" {
		t.Errorf("owner dob = %v, want 1963-02-17", owner["dob"])
	}
	if owner["address"] != "123 Fake Street, Springfield" {
		t.Errorf("owner address = %v", owner["address"])
	}
}

func TestPersonRouteRequiresAuth(t *testing.T) {
	app := newUserTestApp(t)

	req := httptest.NewRequest("GET", "/people/nm0000138", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	token := loginToken(t, app, "mike@example.com")
	req = httptest.NewRequest("GET", "/people/nm0000138", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	// Empty store: authenticated requests reach the handler and miss.
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("authenticated status = %d, want 404", resp.StatusCode)
	}
}
