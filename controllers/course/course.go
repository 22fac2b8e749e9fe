package courseController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coursetracker/middleware"
	"coursetracker/models"
	courseValidator "coursetracker/validators/course"
)

type Controller struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

// CreateCourse creates a new course.
func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	course := models.Course{
		Name:        reqData.Name,
		Description: reqData.Description,
		Instructor:  reqData.Instructor,
	}

	if err := ctl.db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course.")
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// GetAllCourses lists every course in the store's natural return order.
func (ctl *Controller) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ctl.db.Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
	}
	return c.Status(fiber.StatusOK).JSON(courses)
}

// UpdateCourse updates the provided fields of an existing course.
func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!")
	}

	var course models.Course
	if err := ctl.db.First(&course, courseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found.")
	}

	reqData := new(struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Instructor  string `json:"instructor"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	// Update only provided fields
	if reqData.Name != "" {
		course.Name = reqData.Name
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Instructor != "" {
		course.Instructor = reqData.Instructor
	}

	if err := ctl.db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update course.")
	}

	return c.Status(fiber.StatusOK).JSON(course)
}

// DeleteCourse deletes a course. Deleting a missing course is a 404.
func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!")
	}

	result := ctl.db.Delete(&models.Course{}, courseID)
	if result.Error != nil {
		log.Printf("Error deleting course: %v", result.Error)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete course.")
	}
	if result.RowsAffected == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found.")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
