package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string        `json:"email" gorm:"uniqueIndex;not null"`
	Password       string        `json:"-" gorm:"not null"`
	Verified       bool          `json:"verified" gorm:"default:false"`
	TrackedCourses pq.Int64Array `json:"tracked_courses" gorm:"type:integer[]"`
}
