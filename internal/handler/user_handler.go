package handler

import (
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

var dobPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// UserHandler handles account, token, and profile requests.
type UserHandler struct {
	svc *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register creates an account.
// @Summary Register a user
// @Tags user
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /user/register [post]
func (h *UserHandler) Register(c fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   true,
			Message: "Request body incomplete: email and password are required.",
		})
	}

	if err := h.svc.Register(body.Email, body.Password); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: true, Message: "User already exists"})
		}
		slog.Error("registration failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Database error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created"})
}

// Login verifies credentials and issues a token pair.
// @Summary Log in
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenPair
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c fiber.Ctx) error {
	var body struct {
		Email                   string `json:"email"`
		Password                string `json:"password"`
		LongExpiry              bool   `json:"longExpiry"`
		BearerExpiresInSeconds  int    `json:"bearerExpiresInSeconds"`
		RefreshExpiresInSeconds int    `json:"refreshExpiresInSeconds"`
	}
	if err := c.Bind().Body(&body); err != nil || body.Email == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   true,
			Message: "Request body incomplete, both email and password are required",
		})
	}

	pair, err := h.svc.Login(body.Email, body.Password, service.TokenOptions{
		LongExpiry:       body.LongExpiry,
		BearerExpiresIn:  body.BearerExpiresInSeconds,
		RefreshExpiresIn: body.RefreshExpiresInSeconds,
	})
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Incorrect email or password"})
		}
		slog.Error("login failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Internal server error"})
	}
	return c.JSON(pair)
}

// Refresh exchanges a refresh token for a new token pair.
// @Summary Refresh tokens
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} models.TokenPair
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/refresh [post]
func (h *UserHandler) Refresh(c fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind().Body(&body); err != nil || body.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   true,
			Message: "Request body incomplete, refresh token required",
		})
	}

	pair, err := h.svc.Refresh(body.RefreshToken, service.TokenOptions{
		BearerExpiresIn:  fiber.Query(c, "bearerExpiresInSeconds", 0),
		RefreshExpiresIn: fiber.Query(c, "refreshExpiresInSeconds", 0),
	})
	if err != nil {
		return respondTokenError(c, err)
	}
	return c.JSON(pair)
}

// Logout revokes a refresh token.
// @Summary Log out
// @Tags user
// @Accept json
// @Produce json
// @Success 200 {object} ErrorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /user/logout [post]
func (h *UserHandler) Logout(c fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind().Body(&body); err != nil || body.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   true,
			Message: "Request body incomplete, refresh token required",
		})
	}

	if err := h.svc.Logout(body.RefreshToken); err != nil {
		return respondTokenError(c, err)
	}
	return c.JSON(ErrorResponse{Error: false, Message: "Token successfully invalidated"})
}

// GetProfile returns a user profile. Authentication is best-effort:
// the owner sees dob and address, everyone else the public fields.
// @Summary Get profile
// @Tags user
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} models.OwnerProfile
// @Failure 404 {object} ErrorResponse
// @Router /user/{email}/profile [get]
func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	email := c.Params("email")
	authEmail, _ := c.Locals("auth_email").(string)

	profile, err := h.svc.GetProfile(email, authEmail)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: "User not found"})
		}
		slog.Error("get profile failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Database error"})
	}
	return c.JSON(profile)
}

// UpdateProfile replaces the four profile fields. Presence and type
// checks are explicit so near-miss values are rejected for the right
// reason, not by coercion.
// @Summary Update profile
// @Tags user
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Success 200 {object} models.UpdatedProfile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /user/{email}/profile [put]
func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	email := c.Params("email")
	authEmail, _ := c.Locals("auth_email").(string)
	if authEmail == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   true,
			Message: "Authorization header ('Bearer token') not found",
		})
	}
	// Ownership is decided before the body is even looked at.
	if authEmail != email {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: "Forbidden"})
	}

	var body map[string]any
	if err := c.Bind().Body(&body); err != nil {
		body = map[string]any{}
	}

	for _, field := range []string{"firstName", "lastName", "dob", "address"} {
		v, ok := body[field]
		if !ok || v == nil {
			return profileIncomplete(c)
		}
		if s, isString := v.(string); isString && s == "" {
			return profileIncomplete(c)
		}
	}
	for _, field := range []string{"firstName", "lastName", "address"} {
		if _, ok := body[field].(string); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   true,
				Message: "Request body invalid: firstName, lastName and address must be strings only.",
			})
		}
	}

	dob, ok := body["dob"].(string)
	if !ok || !dobPattern.MatchString(dob) {
		return invalidDOB(c)
	}
	date, err := time.Parse("2006-01-02", dob)
	if err != nil || date.Format("2006-01-02") != dob {
		return invalidDOB(c)
	}
	if date.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   true,
			Message: "Invalid input: dob must be a date in the past.",
		})
	}

	firstName := body["firstName"].(string)
	lastName := body["lastName"].(string)
	address := body["address"].(string)

	updated, err := h.svc.UpdateProfile(email, authEmail, firstName, lastName, dob, address)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: "Forbidden"})
		}
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: "User not found"})
		}
		slog.Error("update profile failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Database error"})
	}
	return c.JSON(updated)
}

func respondTokenError(c fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrTokenExpired) {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "JWT token has expired"})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Invalid JWT token"})
}

func profileIncomplete(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   true,
		Message: "Request body incomplete: firstName, lastName, dob and address are required.",
	})
}

func invalidDOB(c fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   true,
		Message: "Invalid input: dob must be a real date in format YYYY-MM-DD.",
	})
}
