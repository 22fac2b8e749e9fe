package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	userController "coursetracker/controllers/user"
	"coursetracker/middleware"
	"coursetracker/services"
	userValidator "coursetracker/validators/user"
)

// SetupUserRoutes sets up registration, login, verification and
// tracked-course routes.
func SetupUserRoutes(app *fiber.App, ctl *userController.Controller, creds *services.Credentials) {
	userGroup := app.Group("/users")

	userGroup.Post("/", userValidator.Signup(), ctl.Signup)
	userGroup.Post("/login", userValidator.Login(), ctl.Login)
	userGroup.Get("/me", middleware.Protected(creds), ctl.Me)
	userGroup.Patch("/:userId/verify", ctl.Verify)

	userGroup.Get("/", ctl.GetAllUsers)
	userGroup.Get("/verified", ctl.GetVerifiedUsers)
	userGroup.Get("/unverified", ctl.GetUnverifiedUsers)

	// Tracked courses
	userGroup.Patch("/:userId/courses/:courseId/track", ctl.TrackCourse)
	userGroup.Patch("/:userId/courses/:courseId/untrack", ctl.UntrackCourse)
	userGroup.Get("/:userId/tracked-courses", ctl.TrackedCourses)
}
