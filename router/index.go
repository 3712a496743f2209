package router

import (
	"sync"

	"github.com/teressaborra/Bookflix-sub000/handler"
	"github.com/teressaborra/Bookflix-sub000/helper"
	"github.com/teressaborra/Bookflix-sub000/middleware"
	"github.com/teressaborra/Bookflix-sub000/validate"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), middleware.CurrentUser(), handler.GetMe)

	movies := v1.Group("/movies", logger.New())
	movies.Get("/", middleware.OptionalJWT(), handler.GetMovies)
	movies.Get("/:slug", middleware.OptionalJWT(), handler.GetMovieBySlug)
	movies.Get("/:slug/reviews", middleware.OptionalJWT(), handler.GetMovieReviews)
	movies.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateMovie(), handler.CreateMovie)
	movies.Put("/:id", middleware.Protected(), middleware.AdminOnly(), validate.UpdateMovie(), handler.UpdateMovie)
	movies.Delete("/:id", middleware.Protected(), middleware.AdminOnly(), validate.GetById("id"), handler.DeleteMovie)
	movies.Post("/:id/poster", middleware.Protected(), middleware.AdminOnly(), validate.GetById("id"), cloudinaryClient(), handler.UploadMoviePoster)

	v1.Post("/cloudinary-signature", middleware.Protected(), middleware.AdminOnly(), handler.GenerateUploadSignature)

	theaters := v1.Group("/theaters", logger.New())
	theaters.Get("/", middleware.OptionalJWT(), handler.GetTheaters)
	theaters.Get("/:id", middleware.OptionalJWT(), handler.GetTheaterById)
	theaters.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateTheater(), handler.CreateTheater)
	theaters.Put("/:id", middleware.Protected(), middleware.AdminOnly(), validate.UpdateTheater(), handler.UpdateTheater)
	theaters.Delete("/:id", middleware.Protected(), middleware.AdminOnly(), validate.GetById("id"), handler.DeleteTheater)

	shows := v1.Group("/shows", logger.New())
	shows.Get("/", middleware.OptionalJWT(), handler.GetShows)
	shows.Get("/code/:code", middleware.OptionalJWT(), handler.GetShowByCode)
	shows.Get("/:showId/seats/live", websocket.New(handler.SeatFeedWebsocket))
	shows.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateShow(), handler.CreateShow)
	shows.Put("/:id", middleware.Protected(), middleware.AdminOnly(), validate.UpdateShow(), handler.UpdateShow)
	shows.Delete("/:id", middleware.Protected(), middleware.AdminOnly(), validate.GetById("id"), handler.DeleteShow)

	bookings := v1.Group("/bookings", logger.New())
	bookings.Use(middleware.Protected(), middleware.CurrentUser())
	bookings.Post("/", validate.CreateBooking(), handler.CreateBooking)
	bookings.Get("/", handler.GetMyBookings)
	bookings.Get("/:code", handler.GetBookingDetail)
	bookings.Put("/:code/cancel", validate.CancelBooking(), handler.CancelBooking)
	bookings.Put("/:code/reschedule", validate.RescheduleBooking(), handler.RescheduleBooking)

	v1.Get("/seat-recommendations/:showId", handler.GetSeatRecommendations)
	v1.Get("/seat-map/:showId", handler.GetSeatMap)

	pricing := v1.Group("/pricing", logger.New())
	pricing.Get("/show/:showId", handler.GetShowPricing)
	pricing.Post("/update/:showId", middleware.Protected(), middleware.AdminOnly(), handler.UpdateShowPricing)

	reviews := v1.Group("/reviews", logger.New())
	reviews.Post("/", middleware.Protected(), middleware.CurrentUser(), validate.CreateReview(), handler.CreateReview)

	loyalty := v1.Group("/loyalty", logger.New())
	loyalty.Get("/me", middleware.Protected(), middleware.CurrentUser(), handler.GetMyLoyalty)

	recommendations := v1.Group("/recommendations", logger.New())
	recommendations.Get("/movies", middleware.Protected(), middleware.CurrentUser(), handler.GetMovieRecommendations)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetAdminStats)
	statistic.Get("/top-movies", middleware.Protected(), middleware.AdminOnly(), handler.GetTopMovies)
}

// cloudinaryClient builds the client on first use and shares it via Locals.
func cloudinaryClient() fiber.Handler {
	var (
		once sync.Once
		cld  *cloudinary.Cloudinary
	)
	return func(c *fiber.Ctx) error {
		once.Do(func() { cld = helper.InitCloudinary() })
		c.Locals("cld", cld)
		return c.Next()
	}
}
