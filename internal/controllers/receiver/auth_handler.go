package receiver

import (
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

const (
	basicAuthRealm = "Restricted Area"
	// authUserLocal holds the authenticated basic-auth user.
	authUserLocal = "basic_auth_user"
)

// Credentials is the single user/password pair accepted by BasicAuthMiddleware.
type Credentials struct {
	User     string
	Password string
}

// BasicAuthMiddleware rejects requests that do not carry creds in an HTTP
// Basic Authorization header. Rejection happens before the body is read.
func BasicAuthMiddleware(creds Credentials) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			creds.User: creds.Password,
		},
		Realm:           basicAuthRealm,
		ContextUsername: authUserLocal,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+basicAuthRealm+`"`)
			return richerrors.Error{
				ExternalMsg: "Authentication failed",
				Code:        fiber.StatusUnauthorized,
			}
		},
	})
}

// authUser returns the user set by BasicAuthMiddleware, or "" on open routes.
func authUser(c *fiber.Ctx) string {
	user, _ := c.Locals(authUserLocal).(string)
	return user
}
