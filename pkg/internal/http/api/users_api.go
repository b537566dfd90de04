package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulsenet/pulse/pkg/internal/http/exts"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/pulsenet/pulse/pkg/internal/services"
)

func getUserByLogin(c *fiber.Ctx) error {
	account, err := services.GetAccountByLogin(c.Params("login"))
	if err != nil {
		return err
	}

	return c.JSON(account)
}

func listUserRating(c *fiber.Ctx) error {
	orderBy := c.Query("orderBy", "total")
	if orderBy != "average" {
		orderBy = "total"
	}

	entries, count, err := services.ListAccountRating(orderBy, paginationFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  entries,
	})
}

func deleteMyAccount(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	if err := services.DeleteAccount(principal.AccountID, principal, c.QueryBool("deletePosts", false)); err != nil {
		return err
	}

	c.ClearCookie(sessionCookieName())
	return c.SendStatus(fiber.StatusOK)
}

func deleteUserAccount(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("userId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user id must be a number")
	}

	if err := services.DeleteAccount(uint(id), principal, c.QueryBool("deletePosts", false)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func changeUserRole(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("userId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user id must be a number")
	}

	var data struct {
		Role models.AccountRole `json:"role" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.ChangeAccountRole(uint(id), data.Role, principal)
	if err != nil {
		return err
	}

	return c.JSON(account)
}
