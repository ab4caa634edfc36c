package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rfpapi/internal/service"
)

// registerRequest is the JSON body accepted by POST /register.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser creates an account from an email/password pair.
func RegisterUser(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		if _, err := authSvc.Register(c.UserContext(), req.Email, req.Password); err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusBadRequest, "DUPLICATE_EMAIL", "Email already registered")
			case errors.Is(err, service.ErrInvalidEmail):
				return writeError(c, fiber.StatusBadRequest, "INVALID_EMAIL", "invalid email address")
			case errors.Is(err, service.ErrInvalidPassword):
				return writeError(c, fiber.StatusBadRequest, "INVALID_PASSWORD", "password is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		return c.JSON(fiber.Map{"message": "User registered successfully"})
	}
}

// LoginUser exchanges form credentials for a bearer token. The form field is
// named "username" for OAuth2 password-flow compatibility but carries the
// account email.
func LoginUser(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.FormValue("username")
		password := c.FormValue("password")

		token, err := authSvc.Login(c.UserContext(), email, password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}
