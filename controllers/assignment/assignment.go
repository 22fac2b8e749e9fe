package assignmentController

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coursetracker/middleware"
	"coursetracker/models"
	"coursetracker/services"
	assignmentValidator "coursetracker/validators/assignment"
)

type Controller struct {
	db          *gorm.DB
	attachments *services.Attachments
}

func New(db *gorm.DB, attachments *services.Attachments) *Controller {
	return &Controller{db: db, attachments: attachments}
}

// CreateAssignment creates an assignment without a file attachment.
func (ctl *Controller) CreateAssignment(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!")
	}

	reqData, ok := c.Locals("validatedAssignment").(*assignmentValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	assignment := models.Assignment{
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     reqData.DueDate,
		CourseID:    uint(courseID),
	}

	if err := ctl.db.Create(&assignment).Error; err != nil {
		log.Printf("Error creating assignment: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create assignment.")
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// GetAllAssignments lists every assignment.
func (ctl *Controller) GetAllAssignments(c *fiber.Ctx) error {
	var assignments []models.Assignment
	if err := ctl.db.Find(&assignments).Error; err != nil {
		log.Printf("Error fetching assignments: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
	}
	return c.Status(fiber.StatusOK).JSON(assignments)
}

// UpdateAssignment updates the provided fields of an existing assignment.
func (ctl *Controller) UpdateAssignment(c *fiber.Ctx) error {
	assignmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id!")
	}

	var assignment models.Assignment
	if err := ctl.db.First(&assignment, assignmentID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found.")
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
		CourseID    uint   `json:"course_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	// Update only provided fields
	if reqData.Title != "" {
		assignment.Title = reqData.Title
	}
	if reqData.Description != "" {
		assignment.Description = reqData.Description
	}
	if reqData.DueDate != "" {
		dueDate, err := assignmentValidator.ParseDueDate(reqData.DueDate)
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Due date is not a valid date!")
		}
		assignment.DueDate = dueDate
	}
	if reqData.CourseID != 0 {
		assignment.CourseID = reqData.CourseID
	}

	if err := ctl.db.Save(&assignment).Error; err != nil {
		log.Printf("Error updating assignment: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update assignment.")
	}

	return c.Status(fiber.StatusOK).JSON(assignment)
}

// DeleteAssignment deletes an assignment. Deleting a missing one is a 404.
func (ctl *Controller) DeleteAssignment(c *fiber.Ctx) error {
	assignmentID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id!")
	}

	result := ctl.db.Delete(&models.Assignment{}, assignmentID)
	if result.Error != nil {
		log.Printf("Error deleting assignment: %v", result.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete assignment.")
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found.")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CreateAttachment runs the attachment pipeline: upload the file to the
// blob store, then insert the assignment row carrying the returned
// reference.
func (ctl *Controller) CreateAttachment(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!")
	}

	reqData, ok := c.Locals("validatedAssignment").(*assignmentValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No file uploaded.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No file uploaded.")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Printf("Error reading uploaded file: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	input := services.AssignmentInput{
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     reqData.DueDate,
		CourseID:    uint(courseID),
	}
	file := &services.FilePayload{
		Name:        fileHeader.Filename,
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	assignment, err := ctl.attachments.Create(c.UserContext(), input, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFile):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No file uploaded.")
		case errors.Is(err, services.ErrUpload):
			log.Printf("Attachment upload error: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload file.")
		default:
			log.Printf("Attachment persistence error: %v", err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create attachment.")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// GetAttachments returns the file paths attached to a course's
// assignments.
func (ctl *Controller) GetAttachments(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("course_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!")
	}

	filePaths, err := ctl.attachments.ListForCourse(uint(courseID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "No attachments found.")
		}
		log.Printf("Error fetching attachments: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch attachments.")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"filePaths": filePaths,
	})
}
