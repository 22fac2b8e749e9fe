package assignmentRoutes

import (
	"github.com/gofiber/fiber/v2"

	assignmentController "coursetracker/controllers/assignment"
	assignmentValidator "coursetracker/validators/assignment"
)

// SetupAssignmentRoutes sets up assignment CRUD and attachment routes.
func SetupAssignmentRoutes(app *fiber.App, ctl *assignmentController.Controller) {
	app.Get("/assignments", ctl.GetAllAssignments)
	app.Patch("/assignments/:id/update", ctl.UpdateAssignment)
	app.Delete("/assignments/:id/delete", ctl.DeleteAssignment)

	// Assignment creation and attachments hang off the course path.
	app.Post("/courses/:course_id/assignments", assignmentValidator.CreateAssignment(), ctl.CreateAssignment)
	app.Post("/courses/:course_id/assignments/:assignment_id/attachments", assignmentValidator.CreateAssignment(), ctl.CreateAttachment)
	app.Get("/courses/:course_id/attachments", ctl.GetAttachments)
}
