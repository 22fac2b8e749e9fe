package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseController "coursetracker/controllers/course"
	courseValidator "coursetracker/validators/course"
)

// SetupCourseRoutes sets up the course CRUD routes.
func SetupCourseRoutes(app *fiber.App, ctl *courseController.Controller) {
	courseGroup := app.Group("/courses")

	courseGroup.Post("/", courseValidator.CreateCourse(), ctl.CreateCourse)
	courseGroup.Get("/", ctl.GetAllCourses)
	courseGroup.Patch("/:id/update", ctl.UpdateCourse)
	courseGroup.Delete("/:id/delete", ctl.DeleteCourse)
}
