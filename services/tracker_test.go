package services

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newTestDB returns a gorm handle backed by sqlmock.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return db, mock
}

func userIDRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func TestTracker_Track(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).WillReturnRows(userIDRows(1))
	mock.ExpectExec(`UPDATE users SET tracked_courses = array_append`).
		WithArgs(int64(9), uint(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tracker.Track(1, 9)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_Track_UserMissing(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).WillReturnRows(userIDRows())
	mock.ExpectRollback()

	err := tracker.Track(1, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_Track_StoreFailure(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).WillReturnRows(userIDRows(1))
	mock.ExpectExec(`UPDATE users SET tracked_courses = array_append`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := tracker.Track(1, 9)
	assert.ErrorIs(t, err, ErrStore)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_Untrack(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).WillReturnRows(userIDRows(1))
	mock.ExpectExec(`UPDATE users SET tracked_courses = array_remove`).
		WithArgs(int64(9), uint(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tracker.Untrack(1, 9)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_Untrack_UserMissing(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "users"`).WillReturnRows(userIDRows())
	mock.ExpectRollback()

	err := tracker.Untrack(1, 9)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTracker_ListTracked(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	rows := sqlmock.NewRows([]string{"id", "email", "tracked_courses"}).
		AddRow(1, "a@b.c", "{3,7}")
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

	courses, err := tracker.ListTracked(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, courses)
}

func TestTracker_ListTracked_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	rows := sqlmock.NewRows([]string{"id", "email", "tracked_courses"}).
		AddRow(1, "a@b.c", nil)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

	courses, err := tracker.ListTracked(1)
	require.NoError(t, err)
	assert.Empty(t, courses)
	assert.NotNil(t, courses)
}

func TestTracker_ListTracked_UserMissing(t *testing.T) {
	db, mock := newTestDB(t)
	tracker := NewTracker(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	courses, err := tracker.ListTracked(1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, courses)
}
