package userController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coursetracker/middleware"
	"coursetracker/models"
	"coursetracker/services"
	userValidator "coursetracker/validators/user"
)

type Controller struct {
	db      *gorm.DB
	creds   *services.Credentials
	tracker *services.Tracker
}

func New(db *gorm.DB, creds *services.Credentials, tracker *services.Tracker) *Controller {
	return &Controller{db: db, creds: creds, tracker: tracker}
}

// Signup registers a new user with a hashed password.
func (ctl *Controller) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*userValidator.SignupRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	// Check if email already exists. The unique index on email is the
	// backstop for the race between this check and the insert.
	if err := ctl.db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Email already exists.")
	}

	hashedPassword, err := ctl.creds.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user.")
	}

	newUser := models.User{
		Email:    reqData.Email,
		Password: hashedPassword,
	}

	if err := ctl.db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Email already exists.")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create user.")
	}

	return c.Status(fiber.StatusCreated).JSON(newUser)
}

// Login checks credentials and issues a bearer token.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*userValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	var user models.User
	if err := ctl.db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.")
		}
		log.Printf("Error querying user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
	}

	if !ctl.creds.CheckPassword(reqData.Password, user.Password) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid password.")
	}

	token, err := ctl.creds.IssueToken(user.ID, user.Verified)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token.")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"auth":  true,
		"token": token,
	})
}

// Verify flips the user's verified flag. Verifying twice is not an error.
func (ctl *Controller) Verify(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id!")
	}

	var user models.User
	if err := ctl.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.")
		}
		log.Printf("Error querying user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
	}

	if err := ctl.db.Model(&user).Update("verified", true).Error; err != nil {
		log.Printf("Error verifying user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to verify user.")
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "User verified successfully.")
}

// Me returns the authenticated user's profile.
func (ctl *Controller) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized!")
	}

	var user models.User
	if err := ctl.db.First(&user, userID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func (ctl *Controller) GetAllUsers(c *fiber.Ctx) error {
	return ctl.listUsers(c, ctl.db)
}

func (ctl *Controller) GetVerifiedUsers(c *fiber.Ctx) error {
	return ctl.listUsers(c, ctl.db.Where("verified = ?", true))
}

func (ctl *Controller) GetUnverifiedUsers(c *fiber.Ctx) error {
	return ctl.listUsers(c, ctl.db.Where("verified = ?", false))
}

func (ctl *Controller) listUsers(c *fiber.Ctx, tx *gorm.DB) error {
	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// TrackCourse adds a course id to the user's tracked list.
func (ctl *Controller) TrackCourse(c *fiber.Ctx) error {
	userID, courseID, err := trackedCourseParams(c)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id parameter!")
	}

	if err := ctl.tracker.Track(userID, courseID); err != nil {
		return trackerError(c, err)
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "Course added to tracked list.")
}

// UntrackCourse removes a course id from the user's tracked list.
func (ctl *Controller) UntrackCourse(c *fiber.Ctx) error {
	userID, courseID, err := trackedCourseParams(c)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id parameter!")
	}

	if err := ctl.tracker.Untrack(userID, courseID); err != nil {
		return trackerError(c, err)
	}

	return middleware.MessageResponse(c, fiber.StatusOK, "Course removed from tracked list.")
}

// TrackedCourses returns the user's tracked course ids.
func (ctl *Controller) TrackedCourses(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user id!")
	}

	courses, err := ctl.tracker.ListTracked(uint(userID))
	if err != nil {
		return trackerError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(courses)
}

func trackedCourseParams(c *fiber.Ctx) (uint, int64, error) {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return 0, 0, err
	}
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return 0, 0, err
	}
	return uint(userID), int64(courseID), nil
}

func trackerError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.")
	}
	log.Printf("Tracked courses error: %v", err)
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to query database.")
}
