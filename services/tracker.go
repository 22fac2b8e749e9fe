package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coursetracker/models"
)

// Tracker mutates the set of course ids a user is tracking. Tracking is
// subscription/interest, not enrollment. A tracked course id is not
// validated against the courses table, so a dangling id can be stored;
// callers live with that.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// Track adds courseID to the user's tracked set. The existence check and
// the mutation run in one transaction so the user cannot vanish between
// them. Tracking an already-tracked course is a no-op.
func (s *Tracker) Track(userID uint, courseID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, userID); err != nil {
			return err
		}

		err := tx.Exec(
			`UPDATE users SET tracked_courses = array_append(tracked_courses, ?)
			 WHERE id = ? AND NOT (? = ANY(COALESCE(tracked_courses, '{}')))`,
			courseID, userID, courseID,
		).Error
		if err != nil {
			return fmt.Errorf("%w: failed to add course to tracked list: %v", ErrStore, err)
		}
		return nil
	})
}

// Untrack removes all occurrences of courseID from the user's tracked
// set. Removing an absent id is not an error.
func (s *Tracker) Untrack(userID uint, courseID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := userExists(tx, userID); err != nil {
			return err
		}

		err := tx.Exec(
			`UPDATE users SET tracked_courses = array_remove(tracked_courses, ?) WHERE id = ?`,
			courseID, userID,
		).Error
		if err != nil {
			return fmt.Errorf("%w: failed to remove course from tracked list: %v", ErrStore, err)
		}
		return nil
	})
}

// ListTracked returns the user's tracked course ids, possibly empty.
func (s *Tracker) ListTracked(userID uint) ([]int64, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to query database: %v", ErrStore, err)
	}

	if user.TrackedCourses == nil {
		return []int64{}, nil
	}
	return user.TrackedCourses, nil
}

func userExists(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.Select("id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return fmt.Errorf("%w: failed to query database: %v", ErrStore, err)
	}
	return nil
}
