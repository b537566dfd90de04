package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/pulsenet/pulse/pkg/internal/services"
	"github.com/spf13/viper"
)

func sessionCookieName() string {
	if name := viper.GetString("security.cookie_name"); len(name) > 0 {
		return name
	}
	return "pulse_session"
}

// authMiddleware resolves the session cookie into the request principal.
// Resolution failures degrade to anonymous; each handler decides whether
// anonymous is acceptable.
func authMiddleware(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookieName())
	if len(token) > 0 {
		if account, err := services.ResolveSession(token); err == nil && account != nil {
			c.Locals("principal", account.Principal())
			c.Locals("account", *account)
		}
	}

	return c.Next()
}

func requirePrincipal(c *fiber.Ctx) (models.Principal, error) {
	if principal, ok := c.Locals("principal").(models.Principal); ok {
		return principal, nil
	}
	return models.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "you must be authenticated first")
}

func paginationFromQuery(c *fiber.Ctx) services.Pagination {
	order := c.Query("order", services.OrderDesc)
	if order != services.OrderAsc {
		order = services.OrderDesc
	}
	orderBy := c.Query("orderBy", services.OrderByDate)
	if orderBy != services.OrderByRating {
		orderBy = services.OrderByDate
	}

	return services.Pagination{
		Page:    c.QueryInt("page", 1),
		Limit:   c.QueryInt("limit", 0),
		Order:   order,
		OrderBy: orderBy,
	}
}
