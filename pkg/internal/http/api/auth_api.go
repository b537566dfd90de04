package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulsenet/pulse/pkg/internal/http/exts"
	"github.com/pulsenet/pulse/pkg/internal/models"
	"github.com/pulsenet/pulse/pkg/internal/services"
)

func setSessionCookie(c *fiber.Ctx, session models.AuthSession) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName(),
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func doRegister(c *fiber.Ctx) error {
	var data struct {
		Login    string `json:"login" validate:"required,min=3,max=50,login"`
		Password string `json:"password" validate:"required,min=6,max=100"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.CreateAccount(data.Login, data.Password)
	if err != nil {
		return err
	}

	session, err := services.IssueSession(account.ID)
	if err != nil {
		return err
	}
	setSessionCookie(c, session)

	return c.Status(fiber.StatusCreated).JSON(account)
}

func doLogin(c *fiber.Ctx) error {
	var data struct {
		Login    string `json:"login" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.AuthenticateAccount(data.Login, data.Password)
	if err != nil {
		return err
	}

	session, err := services.IssueSession(account.ID)
	if err != nil {
		return err
	}
	setSessionCookie(c, session)

	return c.JSON(account)
}

func doLogout(c *fiber.Ctx) error {
	if err := services.RevokeSession(c.Cookies(sessionCookieName())); err != nil {
		return err
	}

	c.ClearCookie(sessionCookieName())
	return c.JSON(fiber.Map{"message": "signed out"})
}

func getMyself(c *fiber.Ctx) error {
	account, ok := c.Locals("account").(models.Account)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you must be authenticated first")
	}

	return c.JSON(account)
}
