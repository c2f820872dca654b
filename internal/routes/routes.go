package routes

import (
	"reelstgram-backend/internal/controllers"

	"github.com/gofiber/fiber/v3"
)

func Setup(app *fiber.App) {

	app.Post("/api/createChannel", controllers.CreateChannel)
	app.Post("/api/editChannel", controllers.EditChannel)
	app.Get("/api/getChannels", controllers.GetChannels)
	app.Get("/api/getChannel/:uniqueId", controllers.GetChannel)
	app.Post("/api/toggleSubscription", controllers.ToggleSubscription)

	app.Post("/api/addContent", controllers.AddContent)
	app.Post("/api/like", controllers.LikePost)
	app.Post("/api/comment", controllers.AddComment)

	app.Post("/api/feed/open", controllers.OpenFeed)
	app.Post("/api/feed/advance", controllers.AdvanceFeed)
	app.Post("/api/feed/gesture", controllers.FeedGesture)
	app.Post("/api/feed/transitionDone", controllers.FinishTransition)
	app.Post("/api/feed/close", controllers.CloseFeed)

	app.Get("/api/profile", controllers.GetProfile)
	app.Post("/api/editProfile", controllers.EditProfile)

	app.Post("/upload", controllers.UploadFileHandler)
	app.Post("/api/uploadAvatar", controllers.UploadAvatarHandler)
}
