package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

func testVerify(token string) (string, error) {
	switch token {
	case "good":
		return "mike@example.com", nil
	case "expired":
		return "", service.ErrTokenExpired
	default:
		return "", service.ErrTokenInvalid
	}
}

func echoAuthEmail(c fiber.Ctx) error {
	email, _ := c.Locals(authEmailKey).(string)
	return c.SendString("email=" + email)
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", RequireAuth(testVerify), echoAuthEmail)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", header: "", wantStatus: 401, wantBody: "Authorization header ('Bearer token') not found"},
		{name: "wrong scheme", header: "Token abc", wantStatus: 401, wantBody: "Authorization header ('Bearer token') not found"},
		{name: "no token", header: "Bearer", wantStatus: 401, wantBody: "Authorization header ('Bearer token') not found"},
		{name: "expired token", header: "Bearer expired", wantStatus: 401, wantBody: "JWT token has expired"},
		{name: "invalid token", header: "Bearer nonsense", wantStatus: 401, wantBody: "Invalid JWT token"},
		{name: "valid token", header: "Bearer good", wantStatus: 200, wantBody: "email=mike@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/open", OptionalAuth(testVerify), echoAuthEmail)

	tests := []struct {
		name     string
		header   string
		wantBody string
	}{
		{name: "missing header is anonymous", header: "", wantBody: "email="},
		{name: "malformed header is anonymous", header: "Token abc", wantBody: "email="},
		{name: "invalid token is anonymous", header: "Bearer nonsense", wantBody: "email="},
		{name: "valid token attaches identity", header: "Bearer good", wantBody: "email=mike@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/open", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != 200 {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantBody {
				t.Errorf("body = %s, want %q", body, tt.wantBody)
			}
		})
	}
}
