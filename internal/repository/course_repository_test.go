package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

var courseRowColumns = []string{"id", "title", "class_level", "subject", "description", "duration", "schedule", "image", "created_at", "updated_at"}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(courseRowColumns).
		AddRow("c1", "Maths 10", 10, "Maths", "desc", "1 year", "Mon", "/img.png", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + courseColumns + " FROM courses WHERE class_level = $1 ORDER BY class_level ASC, created_at ASC, id ASC")).
		WithArgs(10).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE class_level = $1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	class := 10
	list, total, err := repo.List(context.Background(), models.CourseFilter{Class: &class})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].Class)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateUpdateDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(sqlmock.AnyArg(), "Physics", 11, "Physics", "d", "6 months", "Sat", "/p.png", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Title: "Physics", Class: 11, Subject: "Physics", Description: "d", Duration: "6 months", Schedule: "Sat", Image: "/p.png"}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())

	mock.ExpectExec("UPDATE courses SET").WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), course)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs(course.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), course.ID))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("SELECT .* FROM courses WHERE id = \\$1").
		WithArgs("c404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "c404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
