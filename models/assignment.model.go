package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" gorm:"type:date"`
	CourseID    uint      `json:"course_id" gorm:"index"`
	// FilePath is only ever set through the attachment flow, after the
	// blob write has been confirmed.
	FilePath *string `json:"file_path" gorm:"default:NULL"`
}
