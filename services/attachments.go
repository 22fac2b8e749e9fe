package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"coursetracker/models"
)

// Uploader writes a payload to the blob store and returns its durable URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}

// FilePayload is a raw uploaded file: original name plus bytes.
type FilePayload struct {
	Name        string
	Data        []byte
	ContentType string
}

// AssignmentInput is the metadata for an assignment created through the
// attachment flow.
type AssignmentInput struct {
	Title       string
	Description string
	DueDate     time.Time
	CourseID    uint
}

// Attachments orchestrates the two-step attachment flow: blob upload
// first, relational insert second, never the reverse order. The two steps
// are not atomic; an insert failure after a successful upload leaves an
// orphaned blob behind for the reconciliation sweep to collect.
type Attachments struct {
	db     *gorm.DB
	blobs  Uploader
	nowKey func() string
}

func NewAttachments(db *gorm.DB, blobs Uploader) *Attachments {
	return &Attachments{
		db:    db,
		blobs: blobs,
		nowKey: func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
	}
}

// Create uploads the file and then inserts the assignment row carrying
// the returned reference. Attachment creation requires a file by
// contract.
func (s *Attachments) Create(ctx context.Context, input AssignmentInput, file *FilePayload) (*models.Assignment, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, ErrNoFile
	}

	// Timestamp-prefixed keys; collisions are accepted as negligible.
	key := fmt.Sprintf("%s-%s", s.nowKey(), file.Name)

	url, err := s.blobs.Upload(ctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	assignment := models.Assignment{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		CourseID:    input.CourseID,
		FilePath:    &url,
	}

	if err := s.db.Create(&assignment).Error; err != nil {
		// The blob is already durable at this point and is deliberately
		// not removed here; the sweeper reconciles orphans later.
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &assignment, nil
}

// ListForCourse returns the file paths attached to a course's
// assignments.
func (s *Attachments) ListForCourse(courseID uint) ([]string, error) {
	var filePaths []string
	err := s.db.Model(&models.Assignment{}).
		Where("course_id = ? AND file_path IS NOT NULL", courseID).
		Pluck("file_path", &filePaths).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch attachments: %v", ErrStore, err)
	}

	if len(filePaths) == 0 {
		return nil, fmt.Errorf("%w: no attachments found", ErrNotFound)
	}

	return filePaths, nil
}
