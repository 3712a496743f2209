package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// AdminOnly resolves the authenticated user and rejects anyone without the
// ADMIN role. Must be mounted behind Protected().
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, user, err := helper.GetUserFromToken(c)
		if err != nil || user == nil {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}
		if user.Role != model.RoleAdmin {
			return utils.ErrorResponse(c, 403, "Admin only", errors.New("not admin"))
		}
		c.Locals("account", user)
		return c.Next()
	}
}

// CurrentUser loads the user row for the token and stores it in Locals.
// Mounted behind Protected() on customer-facing routes.
func CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, user, err := helper.GetUserFromToken(c)
		if err != nil || user == nil {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}
		c.Locals("account", user)
		return c.Next()
	}
}

func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		if authHeader == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", token)
		return c.Next()
	}
}
