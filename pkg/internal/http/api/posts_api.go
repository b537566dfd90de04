package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulsenet/pulse/pkg/internal/database"
	"github.com/pulsenet/pulse/pkg/internal/http/exts"
	"github.com/pulsenet/pulse/pkg/internal/services"
)

// The upper content bound is enforced in the posting services against
// the configurable content.max_length, so the tag only rejects the
// trivially empty case.
type postContentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func getPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	item, err := services.GetPost(uint(id))
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func createPost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var data postContentRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(principal.AccountID, data.Content)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func editPost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	var data postContentRequest
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.EditPost(uint(id), principal, data.Content)
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	if err := services.DeletePost(uint(id), principal); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

func listMyPost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	pagination := paginationFromQuery(c)
	tx := services.FilterPostWithAuthor(database.C, principal.AccountID)

	count, err := services.CountPost(services.FilterPostWithAuthor(database.C, principal.AccountID))
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, pagination)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listFeedPost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	pagination := paginationFromQuery(c)

	count, err := services.CountPost(services.FilterPostWithSubscriptionsOf(database.C, principal.AccountID))
	if err != nil {
		return err
	}

	items, err := services.ListPost(services.FilterPostWithSubscriptionsOf(database.C, principal.AccountID), pagination)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listPostByHashtag(c *fiber.Ctx) error {
	tag := c.Params("hashtag")
	pagination := paginationFromQuery(c)

	count, err := services.CountPost(services.FilterPostWithHashtag(database.C, tag))
	if err != nil {
		return err
	}

	items, err := services.ListPost(services.FilterPostWithHashtag(database.C, tag), pagination)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func listPostByAuthor(c *fiber.Ctx) error {
	author, err := services.GetAccountByLogin(c.Params("login"))
	if err != nil {
		return err
	}

	pagination := paginationFromQuery(c)

	count, err := services.CountPost(services.FilterPostWithAuthor(database.C, author.ID))
	if err != nil {
		return err
	}

	items, err := services.ListPost(services.FilterPostWithAuthor(database.C, author.ID), pagination)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  items,
	})
}

func ratePost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	var data struct {
		Value int `json:"value" validate:"required,oneof=1 -1"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.RatePost(uint(id), principal.AccountID, data.Value); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"post_id":      uint(id),
		"value":        data.Value,
		"total_rating": services.SumPostRating(uint(id)),
	})
}

func unratePost(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	if err := services.RemoveRating(uint(id), principal.AccountID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}
