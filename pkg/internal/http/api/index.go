package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App) {
	api := app.Group("/api").Name("API")
	api.Use(authMiddleware)

	auth := api.Group("/auth").Name("Auth API")
	{
		auth.Post("/register", doRegister)
		auth.Post("/login", doLogin)
		auth.Post("/logout", doLogout)
		auth.Get("/me", getMyself)
	}

	posts := api.Group("/posts").Name("Posts API")
	{
		posts.Post("/", createPost)
		posts.Get("/my", listMyPost)
		posts.Get("/feed", listFeedPost)
		posts.Get("/hashtag/:hashtag", listPostByHashtag)
		posts.Get("/user/:login", listPostByAuthor)
		posts.Get("/:postId", getPost)
		posts.Patch("/:postId", editPost)
		posts.Delete("/:postId", deletePost)
		posts.Post("/:postId/rate", ratePost)
		posts.Delete("/:postId/rate", unratePost)
	}

	subscriptions := api.Group("/subscriptions").Name("Subscriptions API")
	{
		subscriptions.Get("/", listSubscriptions)
		subscriptions.Get("/followers", listSubscribers)
		subscriptions.Get("/mutual", listMutualSubscriptions)
		subscriptions.Post("/:userId", subscribeToUser)
		subscriptions.Delete("/:userId", unsubscribeFromUser)
	}

	users := api.Group("/users").Name("Users API")
	{
		users.Get("/rating", listUserRating)
		users.Get("/by-login/:login", getUserByLogin)
		users.Delete("/me", deleteMyAccount)
		users.Delete("/:userId", deleteUserAccount)
		users.Patch("/:userId/role", changeUserRole)
	}
}
