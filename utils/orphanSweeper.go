package utils

import (
	"context"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"coursetracker/models"
)

// orphanAge is how old a blob must be before the sweep may collect it.
// Young blobs are skipped so an upload whose relational insert is still
// in flight is never removed.
const orphanAge = 24 * time.Hour

// BlobLister is the slice of the blob store the sweeper needs.
type BlobLister interface {
	List(ctx context.Context) <-chan minio.ObjectInfo
	Remove(ctx context.Context, key string) error
	ObjectURL(key string) string
}

// OrphanSweeper reconciles the blob store against the assignments table.
// An attachment insert that fails after its upload leaves a blob behind;
// the sweep deletes unreferenced blobs older than the threshold.
type OrphanSweeper struct {
	db    *gorm.DB
	blobs BlobLister
}

func NewOrphanSweeper(db *gorm.DB, blobs BlobLister) *OrphanSweeper {
	return &OrphanSweeper{db: db, blobs: blobs}
}

// Start schedules the hourly sweep and returns the running cron.
func (s *OrphanSweeper) Start() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() { s.Sweep(context.Background()) }); err != nil {
		log.Printf("[ORPHAN-SWEEPER] failed to schedule: %v", err)
		return c
	}
	c.Start()
	logSweeper("Scheduled hourly orphaned blob sweep")
	return c
}

// Sweep runs one reconciliation pass.
func (s *OrphanSweeper) Sweep(ctx context.Context) {
	logSweeper("Sweep started")

	removed := 0
	for object := range s.blobs.List(ctx) {
		if object.Err != nil {
			logSweeper("Error listing objects: " + object.Err.Error())
			return
		}

		if time.Since(object.LastModified) < orphanAge {
			continue
		}

		referenced, err := s.isReferenced(object.Key)
		if err != nil {
			logSweeper("Error checking references: " + err.Error())
			return
		}
		if referenced {
			continue
		}

		if err := s.blobs.Remove(ctx, object.Key); err != nil {
			logSweeper("Error removing orphaned blob " + object.Key + ": " + err.Error())
			continue
		}
		removed++
	}

	log.Printf("[ORPHAN-SWEEPER %s] Sweep finished, removed %d orphaned blobs", time.Now().Format(time.RFC3339), removed)
}

// isReferenced reports whether any assignment row, soft-deleted ones
// included, still points at the object.
func (s *OrphanSweeper) isReferenced(key string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Assignment{}).Unscoped().
		Where("file_path = ?", s.blobs.ObjectURL(key)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// logSweeper logs sweeper events with timestamp
func logSweeper(message string) {
	log.Printf("[ORPHAN-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}
