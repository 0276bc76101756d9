package router

import (
	"exhibition_manager/handler"
	"exhibition_manager/middleware"
	"exhibition_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/register", validate.RegisterUser(), handler.Register)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)

	user := v1.Group("/user", logger.New())
	user.Get("/", middleware.Protected(), handler.GetUsers)
	user.Get("/:userId", middleware.Protected(), validate.GetById("userId"), handler.GetUserById)
	user.Put("/:userId", middleware.Protected(), validate.EditUser("userId"), handler.EditUser)
	user.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteUser)

	location := v1.Group("/location", logger.New())
	location.Get("/", handler.GetLocations)
	location.Get("/:locationId", validate.GetById("locationId"), handler.GetLocationById)
	location.Post("/", middleware.Protected(), validate.CreateLocation(), handler.CreateLocation)
	location.Put("/:locationId", middleware.Protected(), validate.EditLocation("locationId"), handler.EditLocation)
	location.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteLocation)

	exhibition := v1.Group("/exhibition", logger.New())
	exhibition.Get("/", middleware.OptionalJWT(), handler.GetExhibitions)
	exhibition.Get("/slug/:slug", middleware.OptionalJWT(), handler.GetExhibitionBySlug)
	exhibition.Get("/:exhibitionId", middleware.OptionalJWT(), validate.GetById("exhibitionId"), handler.GetExhibitionById)
	exhibition.Get("/:exhibitionId/availability", middleware.OptionalJWT(), validate.GetById("exhibitionId"), handler.GetExhibitionAvailability)
	exhibition.Post("/", middleware.Protected(), validate.CreateExhibition(), handler.CreateExhibition)
	exhibition.Put("/:exhibitionId", middleware.Protected(), validate.EditExhibition("exhibitionId"), handler.EditExhibition)
	exhibition.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteExhibition)
	exhibition.Post("/:exhibitionId/media", middleware.Protected(), validate.GetById("exhibitionId"), handler.UploadExhibitionMedia)

	media := v1.Group("/media", logger.New())
	media.Delete("/:mediaId", middleware.Protected(), validate.GetById("mediaId"), handler.DeleteExhibitionMedia)

	registration := v1.Group("/registration", logger.New())
	registration.Post("/", middleware.Protected(), validate.CreateRegistration(), handler.CreateRegistration)
	registration.Get("/mine", middleware.Protected(), handler.GetMyRegistrations)
	registration.Get("/report", middleware.Protected(), handler.GetAttendanceReport)
	registration.Get("/", middleware.Protected(), handler.GetRegistrations)
	registration.Get("/:registrationId", middleware.Protected(), validate.GetById("registrationId"), handler.GetRegistrationById)
	registration.Get("/:registrationId/qrcode", middleware.Protected(), validate.GetById("registrationId"), handler.GetRegistrationQRCode)
	registration.Post("/validate/:token", middleware.Protected(), handler.ValidateTicket)
	registration.Delete("/:registrationId", middleware.Protected(), validate.GetById("registrationId"), handler.CancelRegistration)
}
