// Package social exposes the follow/like/view/post endpoints.
package social

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sociomart/backend/config"
	"github.com/sociomart/backend/pkg/middleware"
	socialsvc "github.com/sociomart/backend/pkg/service/social"
	"github.com/sociomart/backend/webapi/common"
)

// Routes registers the social endpoints. All of them require a bearer
// token; the authenticated user is always the actor.
//
//   - POST /follows        : toggle following a user
//   - GET  /follows        : list followers or following
//   - GET  /follows/check  : probe whether the caller follows a user
//   - POST /likes          : toggle liking a post
//   - GET  /likes          : probe whether the caller liked a post
//   - POST /views          : record a post view (write-once)
//   - POST /posts          : create a post or comment
//   - GET  /wallet         : the caller's point balance
func Routes(app *fiber.App, svc *socialsvc.Service, cfg *config.AppConfig) {
	protected := middleware.JwtProtected(cfg.Jwt.Secret)
	app.Post("/follows", protected, ToggleFollow(svc))
	app.Get("/follows", protected, ListFollows(svc))
	app.Get("/follows/check", protected, CheckFollow(svc))
	app.Post("/likes", protected, ToggleLike(svc))
	app.Get("/likes", protected, CheckLike(svc))
	app.Post("/views", protected, RecordView(svc))
	app.Post("/posts", protected, CreatePost(svc))
	app.Get("/wallet", protected, GetWallet(svc))
}

// ToggleFollow flips the caller's follow on the requested user and
// reports the new state.
func ToggleFollow(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[FollowRequest](c)
		if input == nil {
			return err // error response already written
		}
		followingID, err := uuid.Parse(input.FollowingID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid following_id", err.Error())
		}
		following, err := svc.ToggleFollow(c.UserContext(), actorID, followingID)
		if err != nil {
			log.Errorf("Failed to toggle follow: %v", err)
			return common.DomainErrorJSON(c, "Failed to toggle follow", err)
		}
		return c.JSON(fiber.Map{"following": following})
	}
}

// ListFollows lists followers (default) or following for a user,
// defaulting to the caller.
func ListFollows(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		userID := actorID
		if raw := c.Query("user_id"); raw != "" {
			userID, err = uuid.Parse(raw)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user_id", err.Error())
			}
		}
		var users any
		if c.Query("type", "followers") == "followers" {
			users, err = svc.Followers(c.UserContext(), userID)
		} else {
			users, err = svc.Following(c.UserContext(), userID)
		}
		if err != nil {
			log.Errorf("Failed to list follows: %v", err)
			return common.DomainErrorJSON(c, "Failed to list follows", err)
		}
		return c.JSON(users)
	}
}

// CheckFollow reports whether the caller follows the queried user.
func CheckFollow(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		raw := c.Query("following_id")
		if raw == "" {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing following_id", "following_id is required")
		}
		followingID, err := uuid.Parse(raw)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid following_id", err.Error())
		}
		following, err := svc.IsFollowing(c.UserContext(), actorID, followingID)
		if err != nil {
			log.Errorf("Failed to check follow: %v", err)
			return common.DomainErrorJSON(c, "Failed to check follow", err)
		}
		return c.JSON(fiber.Map{"following": following})
	}
}

// ToggleLike flips the caller's like on the requested post and reports
// the new state.
func ToggleLike(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[LikeRequest](c)
		if input == nil {
			return err // error response already written
		}
		postID, err := uuid.Parse(input.PostID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid post_id", err.Error())
		}
		liked, err := svc.ToggleLike(c.UserContext(), actorID, postID)
		if err != nil {
			log.Errorf("Failed to toggle like: %v", err)
			return common.DomainErrorJSON(c, "Failed to toggle like", err)
		}
		return c.JSON(fiber.Map{"liked": liked})
	}
}

// CheckLike reports whether the caller liked the queried post.
func CheckLike(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		raw := c.Query("post_id")
		if raw == "" {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing post_id", "post_id is required")
		}
		postID, err := uuid.Parse(raw)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid post_id", err.Error())
		}
		liked, err := svc.HasLiked(c.UserContext(), actorID, postID)
		if err != nil {
			log.Errorf("Failed to check like: %v", err)
			return common.DomainErrorJSON(c, "Failed to check like", err)
		}
		return c.JSON(fiber.Map{"liked": liked})
	}
}

// RecordView records the caller's view of a post. Repeat views and
// views of the caller's own posts are accepted without effect.
func RecordView(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[ViewRequest](c)
		if input == nil {
			return err // error response already written
		}
		postID, err := uuid.Parse(input.PostID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid post_id", err.Error())
		}
		if err := svc.RecordView(c.UserContext(), actorID, postID); err != nil {
			log.Errorf("Failed to record view: %v", err)
			return common.DomainErrorJSON(c, "Failed to record view", err)
		}
		return c.JSON(fiber.Map{"viewed": true})
	}
}

// CreatePost creates a post, or a comment when parent_post_id is set.
func CreatePost(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[CreatePostRequest](c)
		if input == nil {
			return err // error response already written
		}
		if input.Content == "" && input.Image == "" {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid post", "post must have content or image")
		}
		in := socialsvc.CreatePostInput{
			AuthorID: actorID,
			Content:  input.Content,
			ImageURL: input.Image,
		}
		if input.ParentPostID != "" {
			parentID, err := uuid.Parse(input.ParentPostID)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid parent_post_id", err.Error())
			}
			in.ParentPostID = &parentID
		}
		post, err := svc.CreatePost(c.UserContext(), in)
		if err != nil {
			log.Errorf("Failed to create post: %v", err)
			return common.DomainErrorJSON(c, "Failed to create post", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Post created", post)
	}
}

// GetWallet returns the caller's current point balance.
func GetWallet(svc *socialsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		balance, err := svc.Balance(c.UserContext(), actorID)
		if err != nil {
			log.Errorf("Failed to read wallet: %v", err)
			return common.DomainErrorJSON(c, "Failed to read wallet", err)
		}
		return c.JSON(fiber.Map{"balance": balance})
	}
}
