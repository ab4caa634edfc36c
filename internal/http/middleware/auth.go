package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rfpapi/internal/model"
	"rfpapi/internal/service"
)

// CurrentUserKey is the key used to store the authenticated user in Fiber's
// context locals.
const CurrentUserKey = "current_user"

const bearerPrefix = "Bearer "

// Auth guards a route with JWT bearer authentication. The Authorization
// header must carry "Bearer <token>"; the token is verified and its subject
// resolved to an account, which is stored in context locals under
// CurrentUserKey. Any failure aborts the request with 401 before the handler
// runs.
func Auth(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		user, err := authSvc.Authenticate(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Could not validate credentials")
		}

		c.Locals(CurrentUserKey, user)

		return c.Next()
	}
}

// CurrentUser returns the user stored by Auth, or nil when the request did
// not pass through it.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(CurrentUserKey).(*model.User)
	return user
}
