package assignmentValidator

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"coursetracker/middleware"
)

// CreateAssignmentRequest is the validated body for assignment creation,
// both the plain flow and the attachment flow. DueDate accepts the usual
// date layouts ("2006-01-02", RFC3339, ...).
type CreateAssignmentRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	DueDateRaw  string `json:"due_date" form:"due_date"`

	DueDate time.Time `json:"-" form:"-"`
}

// ParseDueDate parses a due date in any of the layouts now.Parse knows.
func ParseDueDate(raw string) (time.Time, error) {
	return now.Parse(raw)
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		// Validate DueDate
		if strings.TrimSpace(reqData.DueDateRaw) == "" {
			errors["due_date"] = "Due date is required!"
		} else {
			dueDate, err := ParseDueDate(reqData.DueDateRaw)
			if err != nil {
				errors["due_date"] = "Due date is not a valid date!"
			} else {
				reqData.DueDate = dueDate
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}
