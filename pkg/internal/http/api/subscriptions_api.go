package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulsenet/pulse/pkg/internal/services"
)

func subscribeToUser(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("userId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user id must be a number")
	}

	subscription, err := services.SubscribeToAccount(principal.AccountID, uint(id))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(subscription)
}

func unsubscribeFromUser(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("userId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user id must be a number")
	}

	if err := services.UnsubscribeFromAccount(principal.AccountID, uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func listSubscriptions(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	subscriptions, err := services.ListSubscriptions(principal.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(subscriptions)
}

func listSubscribers(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	subscriptions, err := services.ListSubscribers(principal.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(subscriptions)
}

func listMutualSubscriptions(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	accounts, err := services.ListMutualSubscriptions(principal.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(accounts)
}
